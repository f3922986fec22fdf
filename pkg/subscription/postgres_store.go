package subscription

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/subscriptions/pkg/pg"
)

// Migrations holds the goose migrations for the PostgreSQL store.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"

const subscriptionColumns = `id, user_id, plan, duration, status, is_trial, is_active, started_at, next_billing_date, canceled_at`

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Store over the subscriptions table created by Migrations.
// Identifiers are UUIDs; malformed IDs are reported as not found.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("subscription: postgres pool is required")
	}
	return &postgresStore{pool: pool}
}

func (s *postgresStore) Insert(ctx context.Context, sub *Subscription) (*Subscription, error) {
	c := sub.clone()
	c.ID = uuid.NewString()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO subscriptions (`+subscriptionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.UserID, c.Plan, string(c.Duration), string(c.Status),
		c.IsTrial, c.IsActive, c.StartedAt, c.NextBillingDate, c.CanceledAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert subscription: %w", err)
	}
	return c, nil
}

func (s *postgresStore) FindByID(ctx context.Context, id string) (*Subscription, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSubscriptionNotFound
	}

	row := s.pool.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
	sub, err := scanSubscription(row)
	if err != nil {
		if pg.IsNotFoundError(err) || pg.IsInvalidTextRepresentation(err) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to find subscription %s: %w", id, err)
	}
	return sub, nil
}

func (s *postgresStore) FindMany(ctx context.Context, filter Filter) ([]*Subscription, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE ($1 = '' OR user_id = $1) AND (NOT $2 OR is_active)
		ORDER BY seq`,
		filter.UserID, filter.ActiveOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}

	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Subscription, error) {
		return scanSubscription(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode subscriptions: %w", err)
	}
	if subs == nil {
		subs = make([]*Subscription, 0)
	}
	return subs, nil
}

func (s *postgresStore) Save(ctx context.Context, sub *Subscription) (*Subscription, error) {
	if _, err := uuid.Parse(sub.ID); err != nil {
		return nil, ErrSubscriptionNotFound
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE subscriptions SET user_id = $2, plan = $3, duration = $4, status = $5,
			is_trial = $6, is_active = $7, started_at = $8, next_billing_date = $9, canceled_at = $10
		WHERE id = $1`,
		sub.ID, sub.UserID, sub.Plan, string(sub.Duration), string(sub.Status),
		sub.IsTrial, sub.IsActive, sub.StartedAt, sub.NextBillingDate, sub.CanceledAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save subscription %s: %w", sub.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrSubscriptionNotFound
	}
	return sub.clone(), nil
}

func scanSubscription(row pgx.Row) (*Subscription, error) {
	var (
		sub              Subscription
		duration, status string
		canceledAt       *time.Time
	)
	err := row.Scan(
		&sub.ID, &sub.UserID, &sub.Plan, &duration, &status,
		&sub.IsTrial, &sub.IsActive, &sub.StartedAt, &sub.NextBillingDate, &canceledAt,
	)
	if err != nil {
		return nil, err
	}

	sub.Duration = Duration(duration)
	sub.Status = Status(status)
	sub.StartedAt = sub.StartedAt.UTC()
	sub.NextBillingDate = sub.NextBillingDate.UTC()
	if canceledAt != nil {
		t := canceledAt.UTC()
		sub.CanceledAt = &t
	}
	return &sub, nil
}
