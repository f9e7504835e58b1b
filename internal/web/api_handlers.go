package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/listing"
)

type imageRequest struct {
	URL string `json:"url" validate:"required"`
}

type createListingRequest struct {
	Address      string         `json:"address" validate:"required"`
	City         string         `json:"city" validate:"required"`
	Price        float64        `json:"price" validate:"gte=0"`
	LandSize     float64        `json:"land_size" validate:"gte=0"`
	Bedrooms     int64          `json:"bedrooms" validate:"gte=0"`
	Bathrooms    float64        `json:"bathrooms" validate:"gte=0"`
	PropertyType string         `json:"property_type" validate:"required,oneof=RESIDENTIAL CONDO"`
	Images       []imageRequest `json:"images" validate:"omitempty,dive"`
}

func (req createListingRequest) fields() listing.Fields {
	f := listing.Fields{
		Address:      req.Address,
		City:         req.City,
		Price:        req.Price,
		LandSize:     req.LandSize,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		PropertyType: listing.PropertyType(req.PropertyType),
	}
	for _, img := range req.Images {
		f.Images = append(f.Images, img.URL)
	}
	return f
}

type updateListingRequest struct {
	Address      *string  `json:"address" validate:"omitempty,min=1"`
	City         *string  `json:"city" validate:"omitempty,min=1"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	LandSize     *float64 `json:"land_size" validate:"omitempty,gte=0"`
	Bedrooms     *int64   `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms    *float64 `json:"bathrooms" validate:"omitempty,gte=0"`
	PropertyType *string  `json:"property_type" validate:"omitempty,oneof=RESIDENTIAL CONDO"`
}

func (req updateListingRequest) update() listing.Update {
	u := listing.Update{
		Address:   req.Address,
		City:      req.City,
		Price:     req.Price,
		LandSize:  req.LandSize,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
	}
	if req.PropertyType != nil {
		t := listing.PropertyType(*req.PropertyType)
		u.PropertyType = &t
	}
	return u
}

type inquireRequest struct {
	Message string `json:"message" validate:"required"`
}

// searchFilter reads the optional city, minPrice, maxPrice and propertyType
// query parameters. Absent parameters place no constraint.
func searchFilter(r *http.Request) (listing.Filter, error) {
	q := r.URL.Query()
	f := listing.Filter{City: q.Get("city")}

	parsePrice := func(name string) (*float64, error) {
		v := q.Get(name)
		if v == "" {
			return nil, nil
		}
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %w", name, apperr.ErrInvalid)
		}
		return &p, nil
	}

	var err error
	if f.MinPrice, err = parsePrice("minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice("maxPrice"); err != nil {
		return f, err
	}

	if v := q.Get("propertyType"); v != "" {
		if f.PropertyType, err = listing.ParsePropertyType(v); err != nil {
			return f, err
		}
	}

	return f, nil
}

// apiSearchListings returns listing summaries matching the query.
func (s *Server) apiSearchListings(w http.ResponseWriter, r *http.Request) {
	f, err := searchFilter(r)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	summaries, err := s.listings.Search(f)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, summaries, http.StatusOK)
}

// apiGetListing returns a listing with images and realtor contact.
func (s *Server) apiGetListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	d, err := s.listings.GetByID(id)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, d, http.StatusOK)
}

// apiCreateListing creates a listing owned by the calling realtor.
func (s *Server) apiCreateListing(w http.ResponseWriter, r *http.Request) {
	me, err := caller(r)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	var req createListingRequest
	if err := s.decode(r, &req); err != nil {
		apiFail(w, r, err)
		return
	}

	d, err := s.listings.Create(req.fields(), me.ID)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, d, http.StatusCreated)
}

// apiUpdateListing applies a partial update. Only the owning realtor may update.
func (s *Server) apiUpdateListing(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ownedListing(w, r)
	if !ok {
		return
	}

	var req updateListingRequest
	if err := s.decode(r, &req); err != nil {
		apiFail(w, r, err)
		return
	}

	d, err := s.listings.Update(id, req.update())
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, d, http.StatusOK)
}

// apiDeleteListing removes a listing with its images and messages.
func (s *Server) apiDeleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ownedListing(w, r)
	if !ok {
		return
	}

	if err := s.listings.Delete(id); err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, map[string]interface{}{"id": id, "removed": true}, http.StatusOK)
}

// apiInquire sends a buyer's message to the listing's realtor.
func (s *Server) apiInquire(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	me, err := caller(r)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	var req inquireRequest
	if err := s.decode(r, &req); err != nil {
		apiFail(w, r, err)
		return
	}

	m, err := s.listings.Inquire(id, req.Message, me.ID)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, m, http.StatusCreated)
}

// apiListMessages returns the inquiries on a listing to its realtor.
func (s *Server) apiListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ownedListing(w, r)
	if !ok {
		return
	}

	msgs, err := s.listings.ListMessages(id)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, msgs, http.StatusOK)
}

// ownedListing resolves the {id} path segment and checks that the caller owns
// that listing. On failure it writes the error and returns ok=false.
func (s *Server) ownedListing(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathID(r)
	if err != nil {
		apiFail(w, r, err)
		return 0, false
	}
	me, err := caller(r)
	if err != nil {
		apiFail(w, r, err)
		return 0, false
	}
	if err := s.listings.CheckOwner(id, me.ID); err != nil {
		apiFail(w, r, err)
		return 0, false
	}
	return id, true
}
