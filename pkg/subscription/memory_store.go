package subscription

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu    sync.RWMutex
	order []string
	subs  map[string]*Subscription
}

// NewMemoryStore returns an in-memory Store that assigns UUID identifiers.
// Records are returned in insertion order and copied on the way in and out.
func NewMemoryStore() Store {
	return &memoryStore{
		subs: make(map[string]*Subscription),
	}
}

func (m *memoryStore) Insert(ctx context.Context, sub *Subscription) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := sub.clone()
	c.ID = uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.subs[c.ID] = c
	m.order = append(m.order, c.ID)
	return c.clone(), nil
}

func (m *memoryStore) FindByID(ctx context.Context, id string) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.subs[id]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return sub.clone(), nil
}

func (m *memoryStore) FindMany(ctx context.Context, filter Filter) ([]*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Subscription, 0)
	for _, id := range m.order {
		sub := m.subs[id]
		if filter.UserID != "" && sub.UserID != filter.UserID {
			continue
		}
		if filter.ActiveOnly && !sub.IsActive {
			continue
		}
		result = append(result, sub.clone())
	}
	return result, nil
}

func (m *memoryStore) Save(ctx context.Context, sub *Subscription) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subs[sub.ID]; !ok {
		return nil, ErrSubscriptionNotFound
	}
	m.subs[sub.ID] = sub.clone()
	return sub.clone(), nil
}
