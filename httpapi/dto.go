package httpapi

import (
	"encoding/json"
	"net/http"

	"homeflow/auth"
	"homeflow/listing"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type userResponse struct {
	ID    int64     `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
	Role  auth.Role `json:"role"`
}

type identityResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      auth.Role `json:"role"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type createListingRequest struct {
	Address      string               `json:"address"`
	City         string               `json:"city"`
	Price        float64              `json:"price"`
	PropertyType listing.PropertyType `json:"property_type"`
	Bedrooms     int                  `json:"bedrooms"`
	Bathrooms    int                  `json:"bathrooms"`
	ImageURL     string               `json:"image_url"`
	LandSize     float64              `json:"land_size"`
}

type updateListingRequest struct {
	Address      *string               `json:"address"`
	City         *string               `json:"city"`
	Price        *float64              `json:"price"`
	PropertyType *listing.PropertyType `json:"property_type"`
	Bedrooms     *int                  `json:"bedrooms"`
	Bathrooms    *int                  `json:"bathrooms"`
	ImageURL     *string               `json:"image_url"`
	LandSize     *float64              `json:"land_size"`
}

type listingResponse struct {
	ID           int64                `json:"id"`
	OwnerID      int64                `json:"owner_id"`
	Address      string               `json:"address"`
	City         string               `json:"city"`
	Price        float64              `json:"price"`
	PropertyType listing.PropertyType `json:"property_type"`
	Bedrooms     int                  `json:"bedrooms"`
	Bathrooms    int                  `json:"bathrooms"`
	ImageURL     string               `json:"image_url,omitempty"`
	LandSize     float64              `json:"land_size,omitempty"`
}

func toUserResponse(u auth.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Phone: u.Phone,
		Role:  u.Role,
	}
}

func toListingResponse(l listing.Listing) listingResponse {
	return listingResponse{
		ID:           l.ID,
		OwnerID:      l.OwnerID,
		Address:      l.Address,
		City:         l.City,
		Price:        l.Price,
		PropertyType: l.PropertyType,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		ImageURL:     l.ImageURL,
		LandSize:     l.LandSize,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
