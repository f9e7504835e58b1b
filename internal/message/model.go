// Package message provides buyer inquiries sent to the realtor owning a listing.
package message

import (
	"time"

	"github.com/evcraddock/homebase/internal/user"
)

// Message is a buyer's inquiry about a listing. RealtorID is copied from the
// listing when the message is created.
type Message struct {
	ID        int64         `json:"id"`
	ListingID int64         `json:"listing_id"`
	RealtorID int64         `json:"realtor_id"`
	BuyerID   int64         `json:"buyer_id"`
	Text      string        `json:"message"`
	Buyer     *user.Contact `json:"buyer,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
