// Package httpapi is the thin HTTP glue over the auth, authz and listing
// packages: route wiring, decision gating and JSON translation only.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"homeflow/auth"
	"homeflow/authz"
	"homeflow/listing"
)

// Handler bundles the services the HTTP layer dispatches into.
type Handler struct {
	auth     *auth.Service
	listings *listing.Service
	engine   *authz.Engine
}

// NewHandler creates the API handler.
func NewHandler(authSvc *auth.Service, listingSvc *listing.Service, engine *authz.Engine) *Handler {
	return &Handler{auth: authSvc, listings: listingSvc, engine: engine}
}

// Router wires every route. Role requirements for these routes live in
// RegisterPolicies; the two must name the same operation keys.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", h.guard(OpSignup, h.signup))
	mux.HandleFunc("POST /auth/login", h.guard(OpLogin, h.login))
	mux.HandleFunc("GET /auth/me", h.guard(OpMe, h.me))
	mux.HandleFunc("POST /auth/product-key", h.guard(OpProductKey, h.productKey))

	mux.HandleFunc("GET /listings", h.guard(OpListingSearch, h.searchListings))
	mux.HandleFunc("GET /listings/{id}", h.guard(OpListingGet, h.getListing))
	mux.HandleFunc("POST /listings", h.guard(OpListingCreate, h.createListing))
	mux.HandleFunc("PUT /listings/{id}", h.updateListing)
	mux.HandleFunc("DELETE /listings/{id}", h.deleteListing)

	var handler http.Handler = mux
	handler = LogRequests(handler)
	handler = RequestID(nil)(handler)
	return handler
}

// guard gates a handler behind the decision engine. The resolved identity
// travels to the handler via the decision, not the request context, so
// handlers never re-parse credentials.
func (h *Handler) guard(operationKey string, next func(http.ResponseWriter, *http.Request, authz.Decision)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := h.engine.Decide(r.Context(), operationKey, r.Header.Get("Authorization"), nil)
		if !decision.Allowed {
			h.writeDenial(w, r, operationKey, decision)
			return
		}
		next(w, r, decision)
	}
}

// writeDenial maps a denial to a response. Authenticated-but-forbidden cases
// (wrong role, not owner) surface as 403 with distinct codes; everything
// about a bad credential collapses into one 401 so unauthenticated callers
// can't learn which check failed. The granular reason is still logged.
func (h *Handler) writeDenial(w http.ResponseWriter, r *http.Request, operationKey string, decision authz.Decision) {
	log.Printf("authz: deny op=%s reason=%s rid=%s", operationKey, decision.Reason, RequestIDFromContext(r.Context()))

	switch decision.Reason {
	case authz.ReasonNotOwner:
		writeError(w, http.StatusForbidden, "not_owner", "you do not own this resource")
	case authz.ReasonRoleNotAllowed:
		writeError(w, http.StatusForbidden, "forbidden", "insufficient role")
	default:
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
}

// --- auth handlers ---

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, _ authz.Decision) {
	var req auth.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	result, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, "conflict", "email already registered")
		case errors.Is(err, auth.ErrInvalidProductKey):
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid product key")
		case errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		default:
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, loginResponse{Token: result.Token, User: toUserResponse(result.User)})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, _ authz.Decision) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	result, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: result.Token, User: toUserResponse(result.User)})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request, decision authz.Decision) {
	writeJSON(w, http.StatusOK, identityResponse{
		ID:        decision.Identity.ID,
		Name:      decision.Identity.Name,
		Role:      decision.Identity.Role,
		IssuedAt:  decision.Identity.IssuedAt.Unix(),
		ExpiresAt: decision.Identity.ExpiresAt.Unix(),
	})
}

func (h *Handler) productKey(w http.ResponseWriter, r *http.Request, _ authz.Decision) {
	var req struct {
		Email string    `json:"email"`
		Role  auth.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	key, err := h.auth.GenerateProductKey(req.Email, req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"product_key": key})
}

// --- listing handlers ---

func (h *Handler) searchListings(w http.ResponseWriter, r *http.Request, _ authz.Decision) {
	q := r.URL.Query()
	filter := listing.BuildFilter(listing.FilterParams{
		City:         q.Get("city"),
		MinPrice:     q.Get("minPrice"),
		MaxPrice:     q.Get("maxPrice"),
		PropertyType: q.Get("propertyType"),
	})

	listings, err := h.listings.Search(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "search failed")
		return
	}

	resp := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, toListingResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getListing(w http.ResponseWriter, r *http.Request, _ authz.Decision) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	l, err := h.listings.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, listing.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "listing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) createListing(w http.ResponseWriter, r *http.Request, decision authz.Decision) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	created, err := h.listings.Create(r.Context(), listing.CreateParams{
		OwnerID:      decision.Identity.ID,
		Address:      req.Address,
		City:         req.City,
		Price:        req.Price,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		ImageURL:     req.ImageURL,
		LandSize:     req.LandSize,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toListingResponse(created))
}

// updateListing gates itself instead of using guard: the ownership predicate
// needs the target listing id from the path, which is only known here.
func (h *Handler) updateListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	decision := h.engine.Decide(r.Context(), OpListingUpdate, r.Header.Get("Authorization"), h.listings.OwnedBy(id))
	if !decision.Allowed {
		h.writeDenial(w, r, OpListingUpdate, decision)
		return
	}

	var req updateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	updated, err := h.listings.Update(r.Context(), id, listing.UpdateParams{
		Address:      req.Address,
		City:         req.City,
		Price:        req.Price,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		ImageURL:     req.ImageURL,
		LandSize:     req.LandSize,
	})
	if err != nil {
		if errors.Is(err, listing.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "listing not found")
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(updated))
}

func (h *Handler) deleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	decision := h.engine.Decide(r.Context(), OpListingDelete, r.Header.Get("Authorization"), h.listings.OwnedBy(id))
	if !decision.Allowed {
		h.writeDenial(w, r, OpListingDelete, decision)
		return
	}

	if err := h.listings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, listing.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "listing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "delete failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid listing id")
		return 0, false
	}
	return id, true
}
