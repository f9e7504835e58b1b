package listing

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/user"
)

// Repository provides data access for listings and their images.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a listing repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertSQL = `INSERT INTO listings
	(address, city, price, land_size, bedrooms, bathrooms, property_type, realtor_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const listingColumns = `l.id, l.address, l.city, l.price, l.land_size, l.bedrooms, l.bathrooms, l.property_type, l.realtor_id, l.created_at, l.updated_at`

// Insert stores a listing and its images in one transaction and returns the
// new listing ID. If any image fails to insert, nothing is kept.
func (r *Repository) Insert(f Fields, realtorID int64) (id int64, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	result, err := tx.Exec(insertSQL,
		strings.TrimSpace(f.Address), strings.TrimSpace(f.City),
		f.Price, f.LandSize, f.Bedrooms, f.Bathrooms,
		string(f.PropertyType), realtorID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting listing: %w", err)
	}

	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting insert id: %w", err)
	}

	for i, url := range f.Images {
		if _, err = tx.Exec("INSERT INTO images (url, listing_id) VALUES (?, ?)", url, id); err != nil {
			return 0, fmt.Errorf("inserting image %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing listing: %w", err)
	}

	return id, nil
}

// GetByID returns a listing with all images and the realtor's contact info.
func (r *Repository) GetByID(id int64) (*Detail, error) {
	query := fmt.Sprintf(`SELECT %s, u.name, u.email, u.phone
		FROM listings l JOIN users u ON u.id = l.realtor_id
		WHERE l.id = ?`, listingColumns)

	var d Detail
	var propertyType string
	err := r.db.QueryRow(query, id).Scan(
		&d.ID, &d.Address, &d.City, &d.Price, &d.LandSize,
		&d.Bedrooms, &d.Bathrooms, &propertyType, &d.RealtorID,
		&d.CreatedAt, &d.UpdatedAt,
		&d.Realtor.Name, &d.Realtor.Email, &d.Realtor.Phone,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing %d: %w", id, err)
	}
	d.PropertyType = PropertyType(propertyType)

	images, err := r.images(id)
	if err != nil {
		return nil, err
	}
	d.Images = images

	return &d, nil
}

// images returns a listing's images in insertion order.
func (r *Repository) images(listingID int64) (images []Image, err error) {
	rows, err := r.db.Query("SELECT id, url FROM images WHERE listing_id = ? ORDER BY id", listingID)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	images = make([]Image, 0)
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.URL); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating images: %w", err)
	}

	return images, nil
}

// Search returns listing summaries matching the filter, each carrying the
// url of its first image.
func (r *Repository) Search(f Filter) (summaries []*Summary, err error) {
	where, args := f.where()
	query := `SELECT l.id, l.address, l.city, l.price, l.land_size, l.bedrooms, l.bathrooms, l.property_type,
		COALESCE((SELECT i.url FROM images i WHERE i.listing_id = l.id ORDER BY i.id LIMIT 1), '')
		FROM listings l` + where + " ORDER BY l.id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching listings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var s Summary
		var propertyType string
		if err := rows.Scan(
			&s.ID, &s.Address, &s.City, &s.Price, &s.LandSize,
			&s.Bedrooms, &s.Bathrooms, &propertyType, &s.Image,
		); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		s.PropertyType = PropertyType(propertyType)
		summaries = append(summaries, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return summaries, nil
}

// Update applies the non-nil fields of u to a listing.
func (r *Repository) Update(id int64, u Update) error {
	var sets []string
	var args []interface{}

	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if u.Address != nil {
		set("address", strings.TrimSpace(*u.Address))
	}
	if u.City != nil {
		set("city", strings.TrimSpace(*u.City))
	}
	if u.Price != nil {
		set("price", *u.Price)
	}
	if u.LandSize != nil {
		set("land_size", *u.LandSize)
	}
	if u.Bedrooms != nil {
		set("bedrooms", *u.Bedrooms)
	}
	if u.Bathrooms != nil {
		set("bathrooms", *u.Bathrooms)
	}
	if u.PropertyType != nil {
		set("property_type", string(*u.PropertyType))
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	result, err := r.db.Exec("UPDATE listings SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating listing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("listing %d: %w", id, apperr.ErrNotFound)
	}

	return nil
}

// Delete removes a listing together with its messages and images in one
// transaction. The store does not cascade on its own.
func (r *Repository) Delete(id int64) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	if _, err = tx.Exec("DELETE FROM messages WHERE listing_id = ?", id); err != nil {
		return fmt.Errorf("deleting messages: %w", err)
	}
	if _, err = tx.Exec("DELETE FROM images WHERE listing_id = ?", id); err != nil {
		return fmt.Errorf("deleting images: %w", err)
	}

	result, err := tx.Exec("DELETE FROM listings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		err = fmt.Errorf("listing %d: %w", id, apperr.ErrNotFound)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	return nil
}

// Owner returns the contact info of the realtor who owns a listing.
func (r *Repository) Owner(id int64) (*user.Contact, error) {
	var c user.Contact
	err := r.db.QueryRow(
		`SELECT u.id, u.name, u.email, u.phone
		FROM listings l JOIN users u ON u.id = l.realtor_id
		WHERE l.id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying owner of listing %d: %w", id, err)
	}
	return &c, nil
}
