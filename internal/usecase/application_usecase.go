package usecase

import (
	"context"
	"errors"

	"jobspring-backend/internal/domain"
	"jobspring-backend/pkg/apperror"
	"jobspring-backend/pkg/security"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	userRepo        domain.UserRepository
	profileRepo     domain.ProfileRepository
	outboxRepo      domain.OutboxRepository
	scope           domain.ScopeResolver
	tx              Transactor
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	outboxRepo domain.OutboxRepository,
	scope domain.ScopeResolver,
	tx Transactor,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		outboxRepo:      outboxRepo,
		scope:           scope,
		tx:              tx,
	}
}

// Apply submits a candidate's application against the job version that is
// active right now. The resume is the candidate's on-file URL when present,
// otherwise the validated upload stored as a self-describing data blob.
// The job's status is checked under a row lock inside the insert
// transaction, so an application row never lands after a deactivation's
// invalidation sweep already ran.
func (uc *applicationUsecase) Apply(ctx context.Context, userID, jobID int64, form domain.ApplicationForm, upload *domain.ResumeUpload) (int64, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, apperror.NotFound("User not found")
		}
		return 0, apperror.Internal(err)
	}

	exists, err := uc.applicationRepo.Exists(ctx, jobID, userID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if exists {
		return 0, apperror.Conflict("You have already applied to this job")
	}

	resumeURL, err := uc.resolveResume(ctx, userID, upload)
	if err != nil {
		return 0, err
	}

	var profilePtr *string
	if form.ResumeProfile != "" {
		profilePtr = &form.ResumeProfile
	}

	app := &domain.Application{
		JobID:         jobID,
		UserID:        userID,
		ResumeURL:     resumeURL,
		ResumeProfile: profilePtr,
		Status:        domain.ApplicationStatusSubmitted,
	}

	err = uc.tx.Within(ctx, func(ctx context.Context) error {
		job, err := uc.jobRepo.GetByIDForShare(ctx, jobID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.NotFound("Job not found")
			}
			return apperror.Internal(err)
		}
		if job.Status != domain.JobStatusActive {
			return apperror.Conflict("Cannot apply to an inactive job")
		}

		if err := uc.applicationRepo.Create(ctx, app); err != nil {
			if errors.Is(err, domain.ErrDuplicateApplication) {
				// Concurrent apply lost the race against the unique index.
				return apperror.Conflict("You have already applied to this job")
			}
			return apperror.Internal(err)
		}

		payload := domain.ApplicationSubmittedPayload{
			ApplicationID:   app.ID,
			JobID:           job.ID,
			CompanyID:       job.CompanyID,
			JobTitle:        job.Title,
			ApplicantUserID: user.ID,
			ApplicantName:   user.FullName,
			ApplicantEmail:  user.Email,
		}
		if err := uc.outboxRepo.Enqueue(ctx, domain.EventApplicationSubmitted, payload); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return app.ID, nil
}

func (uc *applicationUsecase) resolveResume(ctx context.Context, userID int64, upload *domain.ResumeUpload) (string, error) {
	onFile, err := uc.profileRepo.ResumeURLByUserID(ctx, userID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if onFile != nil {
		return *onFile, nil
	}

	if upload != nil && len(upload.Data) > 0 {
		if err := security.ValidateResume(upload.ContentType, upload.Data); err != nil {
			return "", apperror.BadRequest(err.Error())
		}
		return security.EncodeResumeDataURL(upload.ContentType, upload.Data), nil
	}

	return "", apperror.BadRequest("No resume provided: neither profile file nor uploaded file")
}

// UpdateStatus allows HR to overwrite an application's status while the
// referenced job version is still active. No finer transition table is
// enforced beyond "known, HR-settable code".
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, hrUserID, applicationID int64, newStatus int) (*domain.ApplicationWithJob, error) {
	// INVALID is system-only, WITHDRAWN candidate-only.
	if newStatus < domain.ApplicationStatusSubmitted || newStatus > domain.ApplicationStatusRejected {
		return nil, apperror.BadRequest("Illegal application status")
	}

	app, err := uc.applicationRepo.GetByIDWithJob(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	hrCompanyID, err := uc.scope.CompanyIDForHR(ctx, hrUserID)
	if err != nil {
		return nil, err
	}
	if app.JobCompanyID != hrCompanyID {
		return nil, apperror.Forbidden("No permission to operate applications from other companies")
	}

	if app.JobStatus != domain.JobStatusActive {
		return nil, apperror.Conflict("This position is no longer valid and the application status cannot be modified")
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, newStatus); err != nil {
		return nil, apperror.Internal(err)
	}
	app.Status = newStatus
	return app, nil
}

// Withdraw lets a candidate terminal-stamp their own application.
func (uc *applicationUsecase) Withdraw(ctx context.Context, userID, applicationID int64) error {
	app, err := uc.applicationRepo.GetByIDWithJob(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	if app.UserID != userID {
		return apperror.Forbidden("You can only withdraw your own application")
	}
	if domain.TerminalApplicationStatus(app.Status) {
		return apperror.Conflict("Application is already finalized")
	}
	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, domain.ApplicationStatusWithdrawn); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ListMine returns the candidate's own applications.
func (uc *applicationUsecase) ListMine(ctx context.Context, userID int64, status *int, page, pageSize int) ([]domain.ApplicationWithJob, int64, error) {
	limit, offset := pageWindow(page, pageSize)
	apps, total, err := uc.applicationRepo.FetchByUser(ctx, userID, status, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return apps, total, nil
}

// ListCompanyApplications returns applications across the HR's company.
// A client-supplied company id is cross-checked against membership, never
// substituted for it.
func (uc *applicationUsecase) ListCompanyApplications(ctx context.Context, hrUserID int64, companyID, jobID *int64, status *int, page, pageSize int) ([]domain.ApplicationWithJob, int64, error) {
	var effectiveCompanyID int64
	if companyID == nil {
		resolved, err := uc.scope.CompanyIDForHR(ctx, hrUserID)
		if err != nil {
			return nil, 0, err
		}
		effectiveCompanyID = resolved
	} else {
		if err := uc.scope.AssertHROwnsCompany(ctx, hrUserID, *companyID); err != nil {
			return nil, 0, err
		}
		effectiveCompanyID = *companyID
	}

	limit, offset := pageWindow(page, pageSize)
	apps, total, err := uc.applicationRepo.FetchByCompany(ctx, effectiveCompanyID, jobID, status, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return apps, total, nil
}

// GetDetailForCompanyMember returns full application details to HR of the
// owning company only.
func (uc *applicationUsecase) GetDetailForCompanyMember(ctx context.Context, hrUserID, applicationID int64) (*domain.ApplicationWithJob, error) {
	app, err := uc.applicationRepo.GetByIDWithJob(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	hrCompanyID, err := uc.scope.CompanyIDForHR(ctx, hrUserID)
	if err != nil {
		return nil, err
	}
	if app.JobCompanyID != hrCompanyID {
		return nil, apperror.Forbidden("Application does not belong to your company")
	}
	return app, nil
}
