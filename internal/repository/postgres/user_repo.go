package postgres

import (
	"context"
	"errors"

	"jobspring-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type userRepo struct {
	db Queryer
}

// NewUserRepository exposes the minimal account surface the core consumes.
func NewUserRepository(db Queryer) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, email, full_name, role FROM users WHERE id = $1`
	var u domain.User
	err := queryerFromContext(ctx, r.db).QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.FullName, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

type profileRepo struct {
	db Queryer
}

// NewProfileRepository exposes the candidate's on-file resume URL; profile
// CRUD itself lives outside this core.
func NewProfileRepository(db Queryer) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) ResumeURLByUserID(ctx context.Context, userID int64) (*string, error) {
	query := `SELECT file_url FROM profiles WHERE user_id = $1`
	var fileURL *string
	err := queryerFromContext(ctx, r.db).QueryRow(ctx, query, userID).Scan(&fileURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if fileURL != nil && *fileURL == "" {
		return nil, nil
	}
	return fileURL, nil
}
