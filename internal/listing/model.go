// Package listing provides the property listing model, its store and the
// listing service.
package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/homebase/internal/apperr"
	"github.com/evcraddock/homebase/internal/user"
)

// PropertyType classifies a listing.
type PropertyType string

const (
	Residential PropertyType = "RESIDENTIAL"
	Condo       PropertyType = "CONDO"
)

// ValidPropertyTypes is the set of allowed property types.
var ValidPropertyTypes = []PropertyType{Residential, Condo}

// IsValid checks if a property type is recognized.
func (t PropertyType) IsValid() bool {
	for _, v := range ValidPropertyTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ParsePropertyType converts a case-insensitive name into a PropertyType.
func ParsePropertyType(s string) (PropertyType, error) {
	t := PropertyType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown property type %q: %w", s, apperr.ErrInvalid)
	}
	return t, nil
}

// Image is a photo attached to a listing.
type Image struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// Listing is a property for sale owned by one realtor.
type Listing struct {
	ID           int64        `json:"id"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Price        float64      `json:"price"`
	LandSize     float64      `json:"land_size"`
	Bedrooms     int64        `json:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms"`
	PropertyType PropertyType `json:"property_type"`
	RealtorID    int64        `json:"realtor_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Detail is a listing with every image and the owning realtor's contact info.
type Detail struct {
	Listing
	Images  []Image      `json:"images"`
	Realtor user.Contact `json:"realtor"`
}

// Summary is the search result shape: one representative image url
// instead of the full image list.
type Summary struct {
	ID           int64        `json:"id"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Price        float64      `json:"price"`
	LandSize     float64      `json:"land_size"`
	Bedrooms     int64        `json:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms"`
	PropertyType PropertyType `json:"property_type"`
	Image        string       `json:"image"`
}

// Fields holds the values needed to create a listing.
type Fields struct {
	Address      string
	City         string
	Price        float64
	LandSize     float64
	Bedrooms     int64
	Bathrooms    float64
	PropertyType PropertyType
	Images       []string
}

// Validate checks the fields before anything is written.
func (f Fields) Validate() error {
	var problems []string
	if strings.TrimSpace(f.Address) == "" {
		problems = append(problems, "address is required")
	}
	if strings.TrimSpace(f.City) == "" {
		problems = append(problems, "city is required")
	}
	if f.Price < 0 {
		problems = append(problems, "price must not be negative")
	}
	if f.LandSize < 0 {
		problems = append(problems, "land size must not be negative")
	}
	if f.Bedrooms < 0 || f.Bathrooms < 0 {
		problems = append(problems, "room counts must not be negative")
	}
	if !f.PropertyType.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown property type %q", f.PropertyType))
	}
	for i, u := range f.Images {
		if strings.TrimSpace(u) == "" {
			problems = append(problems, fmt.Sprintf("image %d has an empty url", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(problems, "; "), apperr.ErrInvalid)
	}
	return nil
}

// Update is a partial change; nil fields are left untouched.
type Update struct {
	Address      *string
	City         *string
	Price        *float64
	LandSize     *float64
	Bedrooms     *int64
	Bathrooms    *float64
	PropertyType *PropertyType
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Address == nil && u.City == nil && u.Price == nil && u.LandSize == nil &&
		u.Bedrooms == nil && u.Bathrooms == nil && u.PropertyType == nil
}

// Validate checks the supplied fields.
func (u Update) Validate() error {
	switch {
	case u.Address != nil && strings.TrimSpace(*u.Address) == "":
		return fmt.Errorf("address must not be empty: %w", apperr.ErrInvalid)
	case u.City != nil && strings.TrimSpace(*u.City) == "":
		return fmt.Errorf("city must not be empty: %w", apperr.ErrInvalid)
	case u.Price != nil && *u.Price < 0:
		return fmt.Errorf("price must not be negative: %w", apperr.ErrInvalid)
	case u.LandSize != nil && *u.LandSize < 0:
		return fmt.Errorf("land size must not be negative: %w", apperr.ErrInvalid)
	case u.Bedrooms != nil && *u.Bedrooms < 0, u.Bathrooms != nil && *u.Bathrooms < 0:
		return fmt.Errorf("room counts must not be negative: %w", apperr.ErrInvalid)
	case u.PropertyType != nil && !u.PropertyType.IsValid():
		return fmt.Errorf("unknown property type %q: %w", *u.PropertyType, apperr.ErrInvalid)
	}
	return nil
}

// Filter narrows a search. Zero-value fields place no constraint.
type Filter struct {
	City         string
	MinPrice     *float64 // inclusive
	MaxPrice     *float64 // inclusive
	PropertyType PropertyType
}

// where builds the SQL predicate for the filter. Absent fields are left out
// of the predicate entirely.
func (f Filter) where() (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if f.City != "" {
		conditions = append(conditions, "l.city = ?")
		args = append(args, f.City)
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "l.price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "l.price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.PropertyType != "" {
		conditions = append(conditions, "l.property_type = ?")
		args = append(args, string(f.PropertyType))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
