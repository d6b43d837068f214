package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"homeflow/cache"
)

// Service handles listing business logic. Search results are cached briefly;
// cache failures degrade to direct repository reads and never fail a request.
type Service struct {
	repo     Repository
	cache    cache.Client
	cacheTTL time.Duration
}

// NewService creates a listing service. The cache may be nil, in which case
// every search hits the repository.
func NewService(repo Repository, cacheClient cache.Client, cacheTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
	}
}

// Search returns listings matching the filter, consulting the cache first.
func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]Listing, error) {
	key := filter.CacheKey()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var listings []Listing
			if err := json.Unmarshal([]byte(cached), &listings); err == nil {
				return listings, nil
			}
			// Undecodable entries are treated as misses and overwritten below.
		case !errors.Is(err, cache.ErrCacheMiss):
			log.Printf("listing: cache get %s: %v", key, err)
		}
	}

	listings, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(listings); err == nil {
			if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
				log.Printf("listing: cache set %s: %v", key, err)
			}
		}
	}

	return listings, nil
}

// GetByID retrieves a single listing.
func (s *Service) GetByID(ctx context.Context, listingID int64) (Listing, error) {
	return s.repo.GetByID(ctx, listingID)
}

// Create validates and inserts a new listing, then invalidates cached searches.
func (s *Service) Create(ctx context.Context, params CreateParams) (Listing, error) {
	if params.OwnerID <= 0 {
		return Listing{}, fmt.Errorf("listing: owner id required")
	}
	if params.Address == "" || params.City == "" {
		return Listing{}, fmt.Errorf("listing: address and city are required")
	}
	if params.Price < 0 {
		return Listing{}, fmt.Errorf("listing: invalid price")
	}
	if !ValidPropertyType(params.PropertyType) {
		return Listing{}, fmt.Errorf("listing: invalid property type %q", params.PropertyType)
	}

	created, err := s.repo.Create(ctx, params)
	if err != nil {
		return Listing{}, err
	}
	s.invalidateSearches(ctx)
	return created, nil
}

// Update applies a partial update and invalidates cached searches.
func (s *Service) Update(ctx context.Context, listingID int64, params UpdateParams) (Listing, error) {
	if params.Price != nil && *params.Price < 0 {
		return Listing{}, fmt.Errorf("listing: invalid price")
	}
	if params.PropertyType != nil && !ValidPropertyType(*params.PropertyType) {
		return Listing{}, fmt.Errorf("listing: invalid property type %q", *params.PropertyType)
	}

	updated, err := s.repo.Update(ctx, listingID, params)
	if err != nil {
		return Listing{}, err
	}
	s.invalidateSearches(ctx)
	return updated, nil
}

// Delete removes a listing and invalidates cached searches.
func (s *Service) Delete(ctx context.Context, listingID int64) error {
	if err := s.repo.Delete(ctx, listingID); err != nil {
		return err
	}
	s.invalidateSearches(ctx)
	return nil
}

// OwnedBy returns an ownership predicate for the given listing, suitable for
// the decision engine's ownership check. A missing listing reports not-owned;
// the surrounding handler surfaces the 404 on its own lookup.
func (s *Service) OwnedBy(listingID int64) func(ctx context.Context, callerID int64) (bool, error) {
	return func(ctx context.Context, callerID int64) (bool, error) {
		ownerID, err := s.repo.FindOwnerID(ctx, listingID)
		if err != nil {
			if errors.Is(err, ErrListingNotFound) {
				return false, nil
			}
			return false, err
		}
		return ownerID == callerID, nil
	}
}

// invalidateSearches drops the cached search namespace. Entries carry a short
// TTL, so a failed invalidation only extends staleness by that window.
func (s *Service) invalidateSearches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, "listings:search:"); err != nil {
		log.Printf("listing: cache invalidate: %v", err)
	}
}
