package userrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
        SELECT id, email, password_hash, is_admin
        FROM users
        WHERE email = $1
    `
	row := r.db.QueryRow(ctx, query, email)
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find user by email", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `
        SELECT id, email, password_hash, is_admin
        FROM users
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find user by id", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (email, password_hash, is_admin)
        VALUES ($1, $2, $3)
        RETURNING id, email, password_hash, is_admin
    `
	row := r.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.IsAdmin)
	var created domain.User
	err := row.Scan(&created.ID, &created.Email, &created.PasswordHash, &created.IsAdmin)
	if err != nil {
		zap.L().Error("failed to create user", zap.Error(err))
		return nil, err
	}
	return &created, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	query := `
        SELECT id, email, password_hash, is_admin
        FROM users
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        UPDATE users
        SET email = $1, password_hash = $2, is_admin = $3
        WHERE id = $4
        RETURNING id, email, password_hash, is_admin
    `
	row := r.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.IsAdmin, user.ID)
	var updated domain.User
	err := row.Scan(&updated.ID, &updated.Email, &updated.PasswordHash, &updated.IsAdmin)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to update user", zap.Error(err))
		return nil, err
	}
	return &updated, nil
}
