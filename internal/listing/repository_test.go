package listing

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/db"
	"github.com/evcraddock/homebase/internal/user"
)

func TestInsertAndGetByID(t *testing.T) {
	d, repo := testDBAndRepo(t)
	realtor := createUser(t, d, "Sadim", "sadim@example.com", user.RoleRealtor)

	id, err := repo.Insert(springfield(), realtor.ID)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero ID")
	}

	got, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Address != "1 Main St" || got.City != "Springfield" {
		t.Errorf("address/city = %q/%q", got.Address, got.City)
	}
	if got.RealtorID != realtor.ID {
		t.Errorf("realtor_id = %d, want %d", got.RealtorID, realtor.ID)
	}
	if got.Realtor.Email != "sadim@example.com" {
		t.Errorf("realtor email = %q", got.Realtor.Email)
	}
	if len(got.Images) != 2 || got.Images[0].URL != "http://x/a.jpg" || got.Images[1].URL != "http://x/b.jpg" {
		t.Errorf("images = %+v", got.Images)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	_, repo := testDBAndRepo(t)

	_, err := repo.GetByID(9999)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInsertRollsBackOnImageFailure(t *testing.T) {
	d, repo := testDBAndRepo(t)
	realtor := createUser(t, d, "Sadim", "sadim@example.com", user.RoleRealtor)

	f := springfield()
	f.Images = []string{"http://x/a.jpg", ""} // empty url violates the images CHECK

	if _, err := repo.Insert(f, realtor.ID); err == nil {
		t.Fatal("expected error for empty image url")
	}

	if n := count(t, d, "listings"); n != 0 {
		t.Errorf("listings = %d, want 0 after rollback", n)
	}
	if n := count(t, d, "images"); n != 0 {
		t.Errorf("images = %d, want 0 after rollback", n)
	}
}

func TestInsertUnknownRealtor(t *testing.T) {
	_, repo := testDBAndRepo(t)

	if _, err := repo.Insert(springfield(), 9999); err == nil {
		t.Fatal("expected foreign key error for missing realtor")
	}
}

func TestSearchFilters(t *testing.T) {
	d, repo := testDBAndRepo(t)
	realtor := createUser(t, d, "Sadim", "sadim@example.com", user.RoleRealtor)

	seed := []Fields{
		{Address: "1 A St", City: "Springfield", Price: 100000, PropertyType: Residential, Images: []string{"http://x/1.jpg"}},
		{Address: "2 B St", City: "Springfield", Price: 250000, PropertyType: Condo},
		{Address: "3 C St", City: "Shelbyville", Price: 250000, PropertyType: Residential},
		{Address: "4 D St", City: "Shelbyville", Price: 900000, PropertyType: Condo},
	}
	for i, f := range seed {
		if _, err := repo.Insert(f, realtor.ID); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	lo := 250000.0
	hi := 250000.0
	high := 500000.0

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"1 A St", "2 B St", "3 C St", "4 D St"}},
		{"city", Filter{City: "Springfield"}, []string{"1 A St", "2 B St"}},
		{"min price inclusive", Filter{MinPrice: &lo}, []string{"2 B St", "3 C St", "4 D St"}},
		{"max price inclusive", Filter{MaxPrice: &hi}, []string{"1 A St", "2 B St", "3 C St"}},
		{"exact price range", Filter{MinPrice: &lo, MaxPrice: &hi}, []string{"2 B St", "3 C St"}},
		{"type", Filter{PropertyType: Condo}, []string{"2 B St", "4 D St"}},
		{"city and type", Filter{City: "Shelbyville", PropertyType: Residential}, []string{"3 C St"}},
		{"all fields", Filter{City: "Shelbyville", MinPrice: &lo, MaxPrice: &high, PropertyType: Residential}, []string{"3 C St"}},
		{"no match", Filter{City: "Nowhere"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(tt.filter)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d listings, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s.Address != tt.want[i] {
					t.Errorf("result %d = %q, want %q", i, s.Address, tt.want[i])
				}
				assertMatches(t, s, tt.filter)
			}
		})
	}
}

func TestSearchFirstImageOnly(t *testing.T) {
	d, repo := testDBAndRepo(t)
	realtor := createUser(t, d, "Sadim", "sadim@example.com", user.RoleRealtor)

	if _, err := repo.Insert(springfield(), realtor.ID); err != nil {
		t.Fatalf("insert: %v", err)
	}
	noImages := springfield()
	noImages.Address = "2 Side St"
	noImages.Images = nil
	if _, err := repo.Insert(noImages, realtor.ID); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.Search(Filter{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d listings, want 2", len(got))
	}
	if got[0].Image != "http://x/a.jpg" {
		t.Errorf("image = %q, want first image", got[0].Image)
	}
	if got[1].Image != "" {
		t.Errorf("image = %q, want empty for listing without images", got[1].Image)
	}
}

func TestUpdatePartial(t *testing.T) {
	d, repo := testDBAndRepo(t)
	realtor := createUser(t, d, "Sadim", "sadim@example.com", user.RoleRealtor)

	id, err := repo.Insert(springfield(), realtor.ID)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	price := 199000.0
	if err := repo.Update(id, Update{Price: &price}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Price != price {
		t.Errorf("price = %v, want %v", got.Price, price)
	}
	if got.Address != "1 Main St" || got.City != "Springfield" || got.Bedrooms != 3 ||
		got.Bathrooms != 2 || got.LandSize != 500 || got.PropertyType != Residential {
		t.Errorf("other fields changed: %+v", got.Listing)
	}
}

func TestUpdateNotFound(t *testing.T) {
	_, repo := testDBAndRepo(t)

	city := "Elsewhere"
	err := repo.Update(9999, Update{City: &city})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesChildren(t *testing.T) {
	d, repo := testDBAndRepo(t)
	realtor := createUser(t, d, "Sadim", "sadim@example.com", user.RoleRealtor)
	buyer := createUser(t, d, "Arman", "arman@example.com", user.RoleBuyer)

	id, err := repo.Insert(springfield(), realtor.ID)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := d.Exec(
		"INSERT INTO messages (text, listing_id, realtor_id, buyer_id) VALUES (?, ?, ?, ?)",
		"hello", id, realtor.ID, buyer.ID,
	); err != nil {
		t.Fatalf("insert message: %v", err)
	}

	if err := repo.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.GetByID(id); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
	if n := count(t, d, "images"); n != 0 {
		t.Errorf("images = %d, want 0", n)
	}
	if n := count(t, d, "messages"); n != 0 {
		t.Errorf("messages = %d, want 0", n)
	}
}

func TestDeleteNotFound(t *testing.T) {
	_, repo := testDBAndRepo(t)

	err := repo.Delete(9999)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOwner(t *testing.T) {
	d, repo := testDBAndRepo(t)
	realtor := createUser(t, d, "Sadim", "sadim@example.com", user.RoleRealtor)

	id, err := repo.Insert(springfield(), realtor.ID)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	owner, err := repo.Owner(id)
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if owner.ID != realtor.ID || owner.Name != "Sadim" || owner.Phone != "555-0100" {
		t.Errorf("owner = %+v", *owner)
	}

	if _, err := repo.Owner(9999); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFilterWhereOmitsAbsentFields(t *testing.T) {
	lo := 10.0
	tests := []struct {
		name      string
		filter    Filter
		wantWhere string
		wantArgs  int
	}{
		{"empty", Filter{}, "", 0},
		{"city only", Filter{City: "Springfield"}, " WHERE l.city = ?", 1},
		{"min price only", Filter{MinPrice: &lo}, " WHERE l.price >= ?", 1},
		{"city and type", Filter{City: "A", PropertyType: Condo}, " WHERE l.city = ? AND l.property_type = ?", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.where()
			if where != tt.wantWhere {
				t.Errorf("where = %q, want %q", where, tt.wantWhere)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("got %d args, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func testDBAndRepo(t *testing.T) (*sql.DB, *Repository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return d, NewRepository(d)
}

func createUser(t *testing.T, d *sql.DB, name, email string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewStore(d).Create(&user.User{
		Name:         name,
		Email:        email,
		Phone:        "555-0100",
		PasswordHash: "hash",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func springfield() Fields {
	return Fields{
		Address:      "1 Main St",
		City:         "Springfield",
		Price:        250000,
		LandSize:     500,
		Bedrooms:     3,
		Bathrooms:    2,
		PropertyType: Residential,
		Images:       []string{"http://x/a.jpg", "http://x/b.jpg"},
	}
}

func count(t *testing.T, d *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := d.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func assertMatches(t *testing.T, s *Summary, f Filter) {
	t.Helper()
	if f.City != "" && s.City != f.City {
		t.Errorf("listing %d city %q outside filter %q", s.ID, s.City, f.City)
	}
	if f.MinPrice != nil && s.Price < *f.MinPrice {
		t.Errorf("listing %d price %v below %v", s.ID, s.Price, *f.MinPrice)
	}
	if f.MaxPrice != nil && s.Price > *f.MaxPrice {
		t.Errorf("listing %d price %v above %v", s.ID, s.Price, *f.MaxPrice)
	}
	if f.PropertyType != "" && s.PropertyType != f.PropertyType {
		t.Errorf("listing %d type %q outside filter %q", s.ID, s.PropertyType, f.PropertyType)
	}
}
