package users

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
)

const columns = `id, username, email, display_name, created_at`

type Store interface {
	Get(ctx context.Context, id int64) (*store.User, error)
	GetByUsername(ctx context.Context, username string) (*store.User, error)
	Create(ctx context.Context, user store.User) (*store.User, error)
}

type userStore struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &userStore{db: db}, nil
}

func (s *userStore) Get(ctx context.Context, id int64) (*store.User, error) {
	var user store.User
	query := `SELECT ` + columns + ` FROM users WHERE id = $1`
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &user, query, id); err != nil {
		return nil, postgres.WrapError("get user", err, "user", id)
	}
	return &user, nil
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*store.User, error) {
	var user store.User
	query := `SELECT ` + columns + ` FROM users WHERE username = $1`
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &user, query, username); err != nil {
		return nil, postgres.WrapError("get user by username", err, "user", 0)
	}
	return &user, nil
}

func (s *userStore) Create(ctx context.Context, user store.User) (*store.User, error) {
	var created store.User
	query := `
		INSERT INTO users (username, email, display_name)
		VALUES ($1, $2, $3)
		RETURNING ` + columns
	err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &created, query,
		user.Username, user.Email, user.DisplayName)
	if err != nil {
		return nil, postgres.WrapError("create user", err, "user", 0)
	}
	return &created, nil
}
