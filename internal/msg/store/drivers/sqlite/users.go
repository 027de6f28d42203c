package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/courier/internal/msg/domain"
	"github.com/aussiebroadwan/courier/internal/msg/store"
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, phone, join_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.JoinAt, u.LastLoginAt,
	)
	return mapConflict(err)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT username, password_hash, first_name, last_name, phone, join_at, last_login_at
		FROM users
		WHERE username = ?`,
		username,
	)

	var u domain.User
	err := row.Scan(
		&u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.JoinAt, &u.LastLoginAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET last_login_at = ? WHERE username = ?`,
		at, username,
	)
	if err != nil {
		return err
	}

	// sqlite happily updates zero rows; surface that as not-found.
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT username, first_name, last_name, phone
		FROM users
		ORDER BY username`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.Username, &p.FirstName, &p.LastName, &p.Phone); err != nil {
			return nil, err
		}
		users = append(users, p)
	}
	return users, rows.Err()
}
