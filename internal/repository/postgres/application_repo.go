package postgres

import (
	"context"
	"errors"
	"time"

	"jobspring-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

type applicationRepo struct {
	db Queryer
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db Queryer) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The (job_id, user_id) unique index is
// the authoritative duplicate guard; a violation maps to
// domain.ErrDuplicateApplication so two concurrent applies cannot both land.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, user_id, resume_url, resume_profile, status, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}

	err := queryerFromContext(ctx, r.db).QueryRow(ctx, query,
		app.JobID,
		app.UserID,
		app.ResumeURL,
		app.ResumeProfile,
		app.Status,
		app.AppliedAt,
	).Scan(&app.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrDuplicateApplication
		}
		return err
	}
	return nil
}

// GetByIDWithJob retrieves an application with its job joined in, since both
// the ownership check and the "job still active" check need job fields.
func (r *applicationRepo) GetByIDWithJob(ctx context.Context, id int64) (*domain.ApplicationWithJob, error) {
	query := `
		SELECT
			a.id, a.job_id, a.user_id, a.resume_url, a.resume_profile, a.status, a.applied_at,
			j.title, j.status, j.company_id,
			c.name AS company_name,
			u.full_name AS applicant_name,
			u.email AS applicant_email
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		LEFT JOIN companies c ON j.company_id = c.id
		LEFT JOIN users u ON a.user_id = u.id
		WHERE a.id = $1`

	var app domain.ApplicationWithJob
	err := queryerFromContext(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.ResumeURL, &app.ResumeProfile, &app.Status, &app.AppliedAt,
		&app.JobTitle, &app.JobStatus, &app.JobCompanyID,
		&app.CompanyName, &app.ApplicantName, &app.ApplicantEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Exists checks if an application already exists for the job/user combination
func (r *applicationRepo) Exists(ctx context.Context, jobID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`
	var exists bool
	err := queryerFromContext(ctx, r.db).QueryRow(ctx, query, jobID, userID).Scan(&exists)
	return exists, err
}

// UpdateStatus overwrites the status of an application
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status int) error {
	query := `UPDATE applications SET status = $2 WHERE id = $1`
	result, err := queryerFromContext(ctx, r.db).Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InvalidateByJobID is a single bulk statement so a crash mid-delivery can
// never leave a job's applications partially invalidated, and rerunning it
// on already-invalid rows changes nothing.
func (r *applicationRepo) InvalidateByJobID(ctx context.Context, jobID int64) (int64, error) {
	query := `UPDATE applications SET status = $2 WHERE job_id = $1 AND status <> $2`
	result, err := queryerFromContext(ctx, r.db).Exec(ctx, query, jobID, domain.ApplicationStatusInvalid)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// FetchByCompany retrieves applications across a company's jobs, optionally
// narrowed to one job or one status, newest first.
func (r *applicationRepo) FetchByCompany(ctx context.Context, companyID int64, jobID *int64, status *int, limit, offset int) ([]domain.ApplicationWithJob, int64, error) {
	query := `
		SELECT
			a.id, a.job_id, a.user_id, a.resume_url, a.resume_profile, a.status, a.applied_at,
			j.title, j.status, j.company_id,
			c.name AS company_name,
			u.full_name AS applicant_name,
			u.email AS applicant_email
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		LEFT JOIN companies c ON j.company_id = c.id
		LEFT JOIN users u ON a.user_id = u.id
		WHERE j.company_id = $1
		  AND ($2::bigint IS NULL OR a.job_id = $2)
		  AND ($3::int IS NULL OR a.status = $3)
		ORDER BY a.applied_at DESC
		LIMIT $4 OFFSET $5`

	db := queryerFromContext(ctx, r.db)
	rows, err := db.Query(ctx, query, companyID, jobID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps, err := scanApplicationsWithJob(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*)
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		WHERE j.company_id = $1
		  AND ($2::bigint IS NULL OR a.job_id = $2)
		  AND ($3::int IS NULL OR a.status = $3)`
	var total int64
	if err := db.QueryRow(ctx, countQuery, companyID, jobID, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// FetchByUser retrieves a candidate's own applications with job and company
// names joined in, newest first.
func (r *applicationRepo) FetchByUser(ctx context.Context, userID int64, status *int, limit, offset int) ([]domain.ApplicationWithJob, int64, error) {
	query := `
		SELECT
			a.id, a.job_id, a.user_id, a.resume_url, a.resume_profile, a.status, a.applied_at,
			j.title, j.status, j.company_id,
			c.name AS company_name,
			u.full_name AS applicant_name,
			u.email AS applicant_email
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		LEFT JOIN companies c ON j.company_id = c.id
		LEFT JOIN users u ON a.user_id = u.id
		WHERE a.user_id = $1
		  AND ($2::int IS NULL OR a.status = $2)
		ORDER BY a.applied_at DESC
		LIMIT $3 OFFSET $4`

	db := queryerFromContext(ctx, r.db)
	rows, err := db.Query(ctx, query, userID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps, err := scanApplicationsWithJob(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM applications WHERE user_id = $1 AND ($2::int IS NULL OR status = $2)`
	var total int64
	if err := db.QueryRow(ctx, countQuery, userID, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func scanApplicationsWithJob(rows pgx.Rows) ([]domain.ApplicationWithJob, error) {
	var apps []domain.ApplicationWithJob
	for rows.Next() {
		var app domain.ApplicationWithJob
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.UserID, &app.ResumeURL, &app.ResumeProfile, &app.Status, &app.AppliedAt,
			&app.JobTitle, &app.JobStatus, &app.JobCompanyID,
			&app.CompanyName, &app.ApplicantName, &app.ApplicantEmail,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
