package httpapi

import (
	"context"
	"strings"
	"sync"
	"time"

	"homeflow/auth"
	"homeflow/listing"
)

type fakeUserRepo struct {
	mu           sync.Mutex
	usersByEmail map[string]auth.User
	usersByID    map[int64]auth.User
	nextID       int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: make(map[string]auth.User),
		usersByID:    make(map[int64]auth.User),
		nextID:       1,
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, params auth.CreateUserParams) (auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.usersByEmail[strings.ToLower(params.Email)]; exists {
		return auth.User{}, auth.ErrDuplicateEmail
	}

	user := auth.User{
		ID:           f.nextID,
		Email:        params.Email,
		Name:         params.Name,
		Phone:        params.Phone,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	f.nextID++
	f.usersByEmail[strings.ToLower(user.Email)] = user
	f.usersByID[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.usersByEmail[strings.ToLower(email)]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, userID int64) (auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.usersByID[userID]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[int64]listing.Listing
	nextID   int64
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[int64]listing.Listing), nextID: 1}
}

func (f *fakeListingRepo) Search(ctx context.Context, filter listing.SearchFilter) ([]listing.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]listing.Listing, 0, len(f.listings))
	for _, l := range f.listings {
		if filter.City != nil && l.City != *filter.City {
			continue
		}
		if filter.MinPrice != nil && l.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && l.Price > *filter.MaxPrice {
			continue
		}
		if filter.PropertyType != nil && l.PropertyType != *filter.PropertyType {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeListingRepo) GetByID(ctx context.Context, id int64) (listing.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.listings[id]
	if !ok {
		return listing.Listing{}, listing.ErrListingNotFound
	}
	return l, nil
}

func (f *fakeListingRepo) Create(ctx context.Context, params listing.CreateParams) (listing.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l := listing.Listing{
		ID:           f.nextID,
		OwnerID:      params.OwnerID,
		Address:      params.Address,
		City:         params.City,
		Price:        params.Price,
		PropertyType: params.PropertyType,
		Bedrooms:     params.Bedrooms,
		Bathrooms:    params.Bathrooms,
		ImageURL:     params.ImageURL,
		LandSize:     params.LandSize,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	f.nextID++
	f.listings[l.ID] = l
	return l, nil
}

func (f *fakeListingRepo) Update(ctx context.Context, id int64, params listing.UpdateParams) (listing.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.listings[id]
	if !ok {
		return listing.Listing{}, listing.ErrListingNotFound
	}
	if params.Address != nil {
		l.Address = *params.Address
	}
	if params.City != nil {
		l.City = *params.City
	}
	if params.Price != nil {
		l.Price = *params.Price
	}
	if params.PropertyType != nil {
		l.PropertyType = *params.PropertyType
	}
	l.UpdatedAt = time.Now().UTC()
	f.listings[id] = l
	return l, nil
}

func (f *fakeListingRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.listings[id]; !ok {
		return listing.ErrListingNotFound
	}
	delete(f.listings, id)
	return nil
}

func (f *fakeListingRepo) FindOwnerID(ctx context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.listings[id]
	if !ok {
		return 0, listing.ErrListingNotFound
	}
	return l.OwnerID, nil
}
