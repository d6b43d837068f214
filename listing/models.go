package listing

import "time"

// PropertyType is the closed enumeration of listing categories.
type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyCondo       PropertyType = "condo"
)

// ValidPropertyType reports whether pt is a known category.
func ValidPropertyType(pt PropertyType) bool {
	switch pt {
	case PropertyResidential, PropertyCondo:
		return true
	default:
		return false
	}
}

// Listing mirrors the listings table. OwnerID is the realtor who created the
// listing and is immutable after creation.
type Listing struct {
	ID           int64
	OwnerID      int64
	Address      string
	City         string
	Price        float64
	PropertyType PropertyType
	Bedrooms     int
	Bathrooms    int
	ImageURL     string
	LandSize     float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateParams enumerates the fields required to insert a listing.
type CreateParams struct {
	OwnerID      int64
	Address      string
	City         string
	Price        float64
	PropertyType PropertyType
	Bedrooms     int
	Bathrooms    int
	ImageURL     string
	LandSize     float64
}

// UpdateParams carries a partial update; nil fields are left unchanged.
// Ownership is not updatable.
type UpdateParams struct {
	Address      *string
	City         *string
	Price        *float64
	PropertyType *PropertyType
	Bedrooms     *int
	Bathrooms    *int
	ImageURL     *string
	LandSize     *float64
}
