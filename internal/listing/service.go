package listing

import (
	"fmt"
	"log/slog"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/message"
	"github.com/evcraddock/homebase/internal/user"
)

// Service provides listing business logic.
type Service struct {
	repo     *Repository
	messages *message.Repository
}

// NewService creates a listing service.
func NewService(repo *Repository, messages *message.Repository) *Service {
	return &Service{repo: repo, messages: messages}
}

// Search returns summaries of the listings matching f.
// An empty result is reported as apperr.ErrNotFound, not as an empty slice.
func (s *Service) Search(f Filter) ([]*Summary, error) {
	summaries, err := s.repo.Search(f)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("no listings match: %w", apperr.ErrNotFound)
	}
	return summaries, nil
}

// GetByID returns the full listing detail.
func (s *Service) GetByID(id int64) (*Detail, error) {
	return s.repo.GetByID(id)
}

// Create stores a listing owned by realtorID together with its images.
func (s *Service) Create(f Fields, realtorID int64) (*Detail, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	id, err := s.repo.Insert(f, realtorID)
	if err != nil {
		return nil, fmt.Errorf("saving listing: %w", err)
	}

	slog.Info("listing created", "listing_id", id, "realtor_id", realtorID, "images", len(f.Images))

	return s.repo.GetByID(id)
}

// Update applies a partial change to an existing listing.
func (s *Service) Update(id int64, u Update) (*Detail, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.Owner(id); err != nil {
		return nil, err
	}

	if !u.IsEmpty() {
		if err := s.repo.Update(id, u); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(id)
}

// Delete removes a listing along with its images and messages.
func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	slog.Info("listing deleted", "listing_id", id)
	return nil
}

// OwnerOf returns the realtor who owns a listing.
func (s *Service) OwnerOf(id int64) (*user.Contact, error) {
	return s.repo.Owner(id)
}

// CheckOwner returns apperr.ErrUnauthorized unless callerID owns the listing.
func (s *Service) CheckOwner(id, callerID int64) error {
	owner, err := s.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner.ID != callerID {
		return fmt.Errorf("user %d does not own listing %d: %w", callerID, id, apperr.ErrUnauthorized)
	}
	return nil
}

// Inquire records a buyer's message to the realtor who owns the listing.
func (s *Service) Inquire(listingID int64, text string, buyerID int64) (*message.Message, error) {
	owner, err := s.OwnerOf(listingID)
	if err != nil {
		return nil, err
	}

	m, err := s.messages.Add(listingID, owner.ID, buyerID, text)
	if err != nil {
		return nil, fmt.Errorf("sending inquiry: %w", err)
	}

	slog.Info("inquiry sent", "listing_id", listingID, "buyer_id", buyerID, "realtor_id", owner.ID)

	return m, nil
}

// ListMessages returns every message for a listing with buyer contact info.
func (s *Service) ListMessages(listingID int64) ([]*message.Message, error) {
	return s.messages.ListByListingID(listingID)
}
