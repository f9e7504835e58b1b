package message

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/user"
)

// Repository provides data access for messages.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a message repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add stores a new message and returns it.
func (r *Repository) Add(listingID, realtorID, buyerID int64, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required: %w", apperr.ErrInvalid)
	}

	result, err := r.db.Exec(
		"INSERT INTO messages (text, listing_id, realtor_id, buyer_id) VALUES (?, ?, ?, ?)",
		text, listingID, realtorID, buyerID,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	var m Message
	err = r.db.QueryRow(
		"SELECT id, listing_id, realtor_id, buyer_id, text, created_at FROM messages WHERE id = ?", id,
	).Scan(&m.ID, &m.ListingID, &m.RealtorID, &m.BuyerID, &m.Text, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("reading back message: %w", err)
	}

	return &m, nil
}

// ListByListingID returns all messages for a listing, oldest first, each with
// the buyer's contact info attached.
func (r *Repository) ListByListingID(listingID int64) (messages []*Message, err error) {
	rows, err := r.db.Query(
		`SELECT m.id, m.listing_id, m.realtor_id, m.buyer_id, m.text, m.created_at,
			u.name, u.phone, u.email
		FROM messages m JOIN users u ON u.id = m.buyer_id
		WHERE m.listing_id = ?
		ORDER BY m.id`,
		listingID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	messages = make([]*Message, 0)
	for rows.Next() {
		var m Message
		var buyer user.Contact
		if err := rows.Scan(
			&m.ID, &m.ListingID, &m.RealtorID, &m.BuyerID, &m.Text, &m.CreatedAt,
			&buyer.Name, &buyer.Phone, &buyer.Email,
		); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Buyer = &buyer
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}

	return messages, nil
}
