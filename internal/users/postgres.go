package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"avatar-service/internal/db"
)

// PostgresGateway reads the users table owned by the account service.
// Expected shape: users(id text primary key, profile_picture text null, ...).
type PostgresGateway struct {
	db *db.DB
}

func NewPostgresGateway(dbConn *db.DB) *PostgresGateway {
	return &PostgresGateway{db: dbConn}
}

func (g *PostgresGateway) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := g.db.Pool.QueryRow(ctx,
		`SELECT id, profile_picture FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.ProfilePicture)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find %s: %w", id, err)
	}
	return &u, nil
}

func (g *PostgresGateway) Save(ctx context.Context, u *User) error {
	tag, err := g.db.Pool.Exec(ctx,
		`UPDATE users SET profile_picture = $2, updated_at = now() WHERE id = $1`,
		u.ID, u.ProfilePicture,
	)
	if err != nil {
		return fmt.Errorf("users: save %s: %w", u.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("users: save %s: no such user", u.ID)
	}
	return nil
}

var _ Gateway = (*PostgresGateway)(nil)
