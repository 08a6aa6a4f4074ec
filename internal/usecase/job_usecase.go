package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"jobspring-backend/internal/domain"
	"jobspring-backend/pkg/apperror"
)

// Transactor runs a function inside a single storage transaction.
type Transactor interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type jobUsecase struct {
	jobRepo    domain.JobRepository
	outboxRepo domain.OutboxRepository
	scope      domain.ScopeResolver
	tx         Transactor
	validate   *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, outboxRepo domain.OutboxRepository, scope domain.ScopeResolver, tx Transactor, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:    jobRepo,
		outboxRepo: outboxRepo,
		scope:      scope,
		tx:         tx,
		validate:   validate,
	}
}

func validateSalaryRange(min, max *float64) error {
	if min != nil && max != nil && *min > *max {
		return apperror.BadRequest("salaryMin cannot be greater than salaryMax")
	}
	return nil
}

func (u *jobUsecase) CreateJob(ctx context.Context, hrUserID int64, input domain.JobInput) (*domain.Job, error) {
	companyID, err := u.scope.CompanyIDForHR(ctx, hrUserID)
	if err != nil {
		return nil, err
	}

	// Business Validation
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if !domain.ValidEmploymentType(input.EmploymentType) {
		return nil, apperror.BadRequest("Unknown employment type")
	}
	if err := validateSalaryRange(input.SalaryMin, input.SalaryMax); err != nil {
		return nil, err
	}

	job := &domain.Job{
		CompanyID:      companyID,
		Title:          input.Title,
		Location:       input.Location,
		EmploymentType: input.EmploymentType,
		SalaryMin:      input.SalaryMin,
		SalaryMax:      input.SalaryMax,
		Description:    input.Description,
		Status:         domain.JobStatusActive,
		PostedAt:       time.Now(),
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// ReplaceJob never mutates the old row beyond its status: it flips the old
// version to INACTIVE and inserts a fresh row carrying the patched fields,
// all in one transaction. Either both rows change or neither does.
func (u *jobUsecase) ReplaceJob(ctx context.Context, hrUserID, jobID int64, patch domain.JobPatch) (*domain.Job, error) {
	companyID, err := u.scope.CompanyIDForHR(ctx, hrUserID)
	if err != nil {
		return nil, err
	}

	var newJob *domain.Job
	err = u.tx.Within(ctx, func(ctx context.Context) error {
		old, err := u.jobRepo.GetByIDForCompany(ctx, jobID, companyID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.NotFound("Job not found or not under your company")
			}
			return apperror.Internal(err)
		}

		next := &domain.Job{
			CompanyID:      old.CompanyID,
			Title:          old.Title,
			Location:       old.Location,
			EmploymentType: old.EmploymentType,
			SalaryMin:      old.SalaryMin,
			SalaryMax:      old.SalaryMax,
			Description:    old.Description,
			Status:         domain.JobStatusActive,
			PostedAt:       time.Now(),
		}
		if patch.Title != nil {
			next.Title = *patch.Title
		}
		if patch.Location != nil {
			next.Location = *patch.Location
		}
		if patch.EmploymentType != nil {
			if !domain.ValidEmploymentType(*patch.EmploymentType) {
				return apperror.BadRequest("Unknown employment type")
			}
			next.EmploymentType = *patch.EmploymentType
		}
		if patch.SalaryMin != nil {
			next.SalaryMin = patch.SalaryMin
		}
		if patch.SalaryMax != nil {
			next.SalaryMax = patch.SalaryMax
		}
		if patch.Description != nil {
			next.Description = *patch.Description
		}
		if err := validateSalaryRange(next.SalaryMin, next.SalaryMax); err != nil {
			return err
		}

		if old.Status == domain.JobStatusActive {
			flipped, err := u.jobRepo.Deactivate(ctx, old.ID, companyID)
			if err != nil {
				return apperror.Internal(err)
			}
			if flipped {
				// The old version just left the active state; its in-flight
				// applications are invalidated after this commits.
				payload := domain.JobDeactivatedPayload{CompanyID: companyID, JobID: old.ID}
				if err := u.outboxRepo.Enqueue(ctx, domain.EventJobDeactivated, payload); err != nil {
					return apperror.Internal(err)
				}
			}
		}

		if err := u.jobRepo.Create(ctx, next); err != nil {
			return apperror.Internal(err)
		}
		newJob = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newJob, nil
}

// DeactivateJob returns as soon as the status flip commits; invalidation of
// dependent applications runs afterwards through the outbox worker. The
// event row is written in the same transaction as the flip, so a rollback
// never produces an event and a no-op never does either.
func (u *jobUsecase) DeactivateJob(ctx context.Context, hrUserID, jobID int64) error {
	companyID, err := u.scope.CompanyIDForHR(ctx, hrUserID)
	if err != nil {
		return err
	}

	return u.tx.Within(ctx, func(ctx context.Context) error {
		flipped, err := u.jobRepo.Deactivate(ctx, jobID, companyID)
		if err != nil {
			return apperror.Internal(err)
		}
		if !flipped {
			// Distinguish "not visible to this company" from "already
			// inactive": the former is an error, the latter a no-op.
			if _, err := u.jobRepo.GetByIDForCompany(ctx, jobID, companyID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return apperror.NotFound("Job not found or not under your company")
				}
				return apperror.Internal(err)
			}
			return nil
		}

		payload := domain.JobDeactivatedPayload{CompanyID: companyID, JobID: jobID}
		if err := u.outboxRepo.Enqueue(ctx, domain.EventJobDeactivated, payload); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
}

// GetJobForEdit resolves an id to its job only while that version is still
// ACTIVE. A replaced version keeps its row for history, but its id is dead
// as an edit target; ListCompanyJobs with a status filter still surfaces it.
func (u *jobUsecase) GetJobForEdit(ctx context.Context, hrUserID, jobID int64) (*domain.Job, error) {
	companyID, err := u.scope.CompanyIDForHR(ctx, hrUserID)
	if err != nil {
		return nil, err
	}
	job, err := u.jobRepo.GetByIDForCompany(ctx, jobID, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found or not under your company")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.NotFound("Job not found or not under your company")
	}
	return job, nil
}

func (u *jobUsecase) ListCompanyJobs(ctx context.Context, hrUserID int64, status *int, keyword string, page, pageSize int) ([]domain.Job, int64, error) {
	companyID, err := u.scope.CompanyIDForHR(ctx, hrUserID)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := pageWindow(page, pageSize)
	jobs, total, err := u.jobRepo.FetchByCompany(ctx, companyID, status, keyword, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

// ListActiveJobs backs the public board; only ACTIVE postings are visible
// and the filter is enforced server-side.
func (u *jobUsecase) ListActiveJobs(ctx context.Context, keyword string, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := pageWindow(page, pageSize)
	jobs, total, err := u.jobRepo.FetchActive(ctx, keyword, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

// GetActiveJob backs the public detail page. Inactive versions are hidden
// from unauthenticated callers even though their ids stay addressable
// internally.
func (u *jobUsecase) GetActiveJob(ctx context.Context, jobID int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

func pageWindow(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}
