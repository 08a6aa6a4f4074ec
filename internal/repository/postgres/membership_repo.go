package postgres

import (
	"context"
	"errors"

	"jobspring-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type membershipRepo struct {
	db Queryer
}

// NewMembershipRepository creates a read-only view over company membership.
func NewMembershipRepository(db Queryer) domain.MembershipRepository {
	return &membershipRepo{db: db}
}

func (r *membershipRepo) CompanyIDForHR(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT company_id FROM company_members WHERE user_id = $1 AND role = $2 LIMIT 1`
	var companyID int64
	err := queryerFromContext(ctx, r.db).QueryRow(ctx, query, userID, domain.RoleHR).Scan(&companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return companyID, nil
}

func (r *membershipRepo) IsHROfCompany(ctx context.Context, userID, companyID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM company_members WHERE user_id = $1 AND company_id = $2 AND role = $3)`
	var exists bool
	err := queryerFromContext(ctx, r.db).QueryRow(ctx, query, userID, companyID, domain.RoleHR).Scan(&exists)
	return exists, err
}

func (r *membershipRepo) HREmailsByCompany(ctx context.Context, companyID int64) ([]string, error) {
	query := `
		SELECT u.email
		FROM company_members m
		JOIN users u ON m.user_id = u.id
		WHERE m.company_id = $1 AND m.role = $2 AND u.email <> ''`

	rows, err := queryerFromContext(ctx, r.db).Query(ctx, query, companyID, domain.RoleHR)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
