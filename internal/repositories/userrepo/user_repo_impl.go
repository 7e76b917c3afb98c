package userrepo

import (
	"context"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
)

type UserRepository struct {
	store ledger.Store
}

func New(store ledger.Store) IUserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, bool, error) {
	var profile domain.UserProfile
	found, err := r.store.Get(ctx, path(userID), &profile)
	if err != nil {
		return nil, false, &domain.StoreError{Op: "get", Path: path(userID), Err: err}
	}
	if !found {
		return nil, false, nil
	}
	return &profile, true, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID, name, email string) error {
	err := r.store.Update(ctx, path(userID), map[string]interface{}{
		"name":  name,
		"email": email,
	})
	if err != nil {
		return &domain.StoreError{Op: "update", Path: path(userID), Err: err}
	}
	return nil
}

func (r *UserRepository) SetStripeCustomerID(ctx context.Context, userID, customerID string) error {
	err := r.store.Update(ctx, path(userID), map[string]interface{}{
		"stripeCustomerId": customerID,
	})
	if err != nil {
		return &domain.StoreError{Op: "update", Path: path(userID), Err: err}
	}
	return nil
}

func path(userID string) string {
	return "users/" + userID
}
