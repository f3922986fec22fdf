package subscription_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/subscriptions/pkg/subscription"
)

// MockStore is a mock implementation of subscription.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Insert(ctx context.Context, sub *subscription.Subscription) (*subscription.Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockStore) FindByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockStore) FindMany(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, sub *subscription.Subscription) (*subscription.Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}
