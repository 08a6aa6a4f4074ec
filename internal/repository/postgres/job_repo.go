package postgres

import (
	"context"
	"errors"
	"time"

	"jobspring-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type jobRepo struct {
	db Queryer
}

func NewJobRepository(db Queryer) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (company_id, title, location, employment_type, salary_min, salary_max, description, status, posted_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if job.PostedAt.IsZero() {
		job.PostedAt = time.Now()
	}
	return queryerFromContext(ctx, r.db).QueryRow(ctx, query,
		job.CompanyID, job.Title, job.Location, job.EmploymentType,
		job.SalaryMin, job.SalaryMax, job.Description, job.Status, job.PostedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, company_id, title, location, employment_type, salary_min, salary_max, description, status, posted_at
              FROM jobs WHERE id = $1`
	return r.scanJob(queryerFromContext(ctx, r.db).QueryRow(ctx, query, id))
}

// GetByIDForShare locks the job row in share mode for the rest of the
// surrounding transaction, so a status flip racing this read serializes
// against it.
func (r *jobRepo) GetByIDForShare(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, company_id, title, location, employment_type, salary_min, salary_max, description, status, posted_at
              FROM jobs WHERE id = $1 FOR SHARE`
	return r.scanJob(queryerFromContext(ctx, r.db).QueryRow(ctx, query, id))
}

// GetByIDForCompany loads a job scoped to the given company. A job that
// exists but belongs to another company is reported as not found, so callers
// cannot probe for foreign ids.
func (r *jobRepo) GetByIDForCompany(ctx context.Context, id, companyID int64) (*domain.Job, error) {
	query := `SELECT id, company_id, title, location, employment_type, salary_min, salary_max, description, status, posted_at
              FROM jobs WHERE id = $1 AND company_id = $2`
	return r.scanJob(queryerFromContext(ctx, r.db).QueryRow(ctx, query, id, companyID))
}

func (r *jobRepo) scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.Location, &job.EmploymentType,
		&job.SalaryMin, &job.SalaryMax, &job.Description, &job.Status, &job.PostedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Deactivate only touches rows that are still ACTIVE, so calling it on an
// already-inactive job is a no-op rather than an error.
func (r *jobRepo) Deactivate(ctx context.Context, id, companyID int64) (bool, error) {
	query := `UPDATE jobs SET status = $3 WHERE id = $1 AND company_id = $2 AND status = $4`
	result, err := queryerFromContext(ctx, r.db).Exec(ctx, query,
		id, companyID, domain.JobStatusInactive, domain.JobStatusActive)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// keywordFilter matches a search token against the text columns and, when
// the token is an employment type alias ("full", "intern", "contract"),
// against the employment type code as well.
const keywordFilter = `($2 = ''
    OR title ILIKE '%' || $2 || '%'
    OR location ILIKE '%' || $2 || '%'
    OR description ILIKE '%' || $2 || '%'
    OR employment_type = CASE
        WHEN 'full-time' ILIKE $2 || '%' THEN 1
        WHEN 'internship' ILIKE $2 || '%' THEN 2
        WHEN 'contract' ILIKE $2 || '%' THEN 3
        ELSE NULL END)`

func (r *jobRepo) FetchByCompany(ctx context.Context, companyID int64, status *int, keyword string, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT id, company_id, title, location, employment_type, salary_min, salary_max, description, status, posted_at
              FROM jobs
              WHERE company_id = $1
                AND ($3::int IS NULL OR status = $3)
                AND ` + keywordFilter + `
              ORDER BY posted_at DESC LIMIT $4 OFFSET $5`

	db := queryerFromContext(ctx, r.db)
	rows, err := db.Query(ctx, query, companyID, keyword, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(&job.ID, &job.CompanyID, &job.Title, &job.Location, &job.EmploymentType, &job.SalaryMin, &job.SalaryMax, &job.Description, &job.Status, &job.PostedAt); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}

	countQuery := `SELECT COUNT(*) FROM jobs
                   WHERE company_id = $1
                     AND ($3::int IS NULL OR status = $3)
                     AND ` + keywordFilter
	var total int64
	if err := db.QueryRow(ctx, countQuery, companyID, keyword, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// FetchActive returns only ACTIVE jobs with company names for the public
// board. The status filter is hardcoded server-side.
func (r *jobRepo) FetchActive(ctx context.Context, keyword string, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT j.id, j.company_id, j.title, j.location, j.employment_type, j.salary_min, j.salary_max, j.description, j.status, j.posted_at,
                     c.name AS company_name
              FROM jobs j
              LEFT JOIN companies c ON j.company_id = c.id
              WHERE j.status = 0
                AND ($1 = '' OR j.title ILIKE '%' || $1 || '%' OR j.location ILIKE '%' || $1 || '%' OR j.description ILIKE '%' || $1 || '%' OR c.name ILIKE '%' || $1 || '%')
              ORDER BY j.posted_at DESC LIMIT $2 OFFSET $3`

	db := queryerFromContext(ctx, r.db)
	rows, err := db.Query(ctx, query, keyword, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(&job.ID, &job.CompanyID, &job.Title, &job.Location, &job.EmploymentType, &job.SalaryMin, &job.SalaryMax, &job.Description, &job.Status, &job.PostedAt, &job.CompanyName); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}

	countQuery := `SELECT COUNT(*) FROM jobs j
                   LEFT JOIN companies c ON j.company_id = c.id
                   WHERE j.status = 0
                     AND ($1 = '' OR j.title ILIKE '%' || $1 || '%' OR j.location ILIKE '%' || $1 || '%' OR j.description ILIKE '%' || $1 || '%' OR c.name ILIKE '%' || $1 || '%')`
	var total int64
	if err := db.QueryRow(ctx, countQuery, keyword).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}
