package message

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/db"
)

type fixture struct {
	repo      *Repository
	listingID int64
	realtorID int64
	buyerID   int64
}

func testSetup(t *testing.T) fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})

	realtorID := insertUser(t, d, "Sadim", "sadim@example.com", "555-0009", "REALTOR")
	buyerID := insertUser(t, d, "Arman", "arman@example.com", "555-0011", "BUYER")

	res, err := d.Exec(
		`INSERT INTO listings (address, city, price, land_size, bedrooms, bathrooms, property_type, realtor_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"1 Main St", "Springfield", 250000, 500, 3, 2, "RESIDENTIAL", realtorID,
	)
	if err != nil {
		t.Fatalf("insert listing: %v", err)
	}
	listingID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	return fixture{repo: NewRepository(d), listingID: listingID, realtorID: realtorID, buyerID: buyerID}
}

func insertUser(t *testing.T, d *sql.DB, name, email, phone, role string) int64 {
	t.Helper()
	res, err := d.Exec(
		"INSERT INTO users (name, email, phone, password_hash, role) VALUES (?, ?, ?, ?, ?)",
		name, email, phone, "hash", role,
	)
	if err != nil {
		t.Fatalf("insert user %s: %v", email, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}

func TestAddAndListByListingID(t *testing.T) {
	f := testSetup(t)

	m, err := f.repo.Add(f.listingID, f.realtorID, f.buyerID, "  Is this available?  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if m.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if m.Text != "Is this available?" {
		t.Errorf("text = %q, want trimmed", m.Text)
	}
	if m.RealtorID != f.realtorID {
		t.Errorf("realtor_id = %d, want %d", m.RealtorID, f.realtorID)
	}

	msgs, err := f.repo.ListByListingID(f.listingID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	got := msgs[0]
	if got.Buyer == nil {
		t.Fatal("expected buyer contact")
	}
	if got.Buyer.Name != "Arman" || got.Buyer.Phone != "555-0011" || got.Buyer.Email != "arman@example.com" {
		t.Errorf("buyer = %+v", *got.Buyer)
	}
}

func TestAddEmptyText(t *testing.T) {
	f := testSetup(t)

	_, err := f.repo.Add(f.listingID, f.realtorID, f.buyerID, "   ")
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestAddMissingListing(t *testing.T) {
	f := testSetup(t)

	if _, err := f.repo.Add(9999, f.realtorID, f.buyerID, "hello"); err == nil {
		t.Fatal("expected foreign key error for missing listing")
	}
}

func TestListByListingIDEmpty(t *testing.T) {
	f := testSetup(t)

	msgs, err := f.repo.ListByListingID(f.listingID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if msgs == nil || len(msgs) != 0 {
		t.Errorf("got %v, want empty non-nil slice", msgs)
	}
}

func TestListOrderOldestFirst(t *testing.T) {
	f := testSetup(t)

	for _, text := range []string{"first", "second", "third"} {
		if _, err := f.repo.Add(f.listingID, f.realtorID, f.buyerID, text); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}

	msgs, err := f.repo.ListByListingID(f.listingID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[0].Text != "first" || msgs[2].Text != "third" {
		t.Errorf("order = %q, %q, %q", msgs[0].Text, msgs[1].Text, msgs[2].Text)
	}
}
