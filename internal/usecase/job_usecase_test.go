package usecase_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobspring-backend/internal/domain"
	"jobspring-backend/internal/usecase"
	"jobspring-backend/pkg/apperror"
)

func newJobUsecase(jobs *MockJobRepo, outbox *MockOutboxRepo, members *MockMembershipRepo) domain.JobUsecase {
	scope := usecase.NewScopeResolver(members)
	return usecase.NewJobUsecase(jobs, outbox, scope, fakeTx{}, validator.New())
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestCreateJob(t *testing.T) {
	t.Run("Should create an active job under the HR's own company", func(t *testing.T) {
		jobs := new(MockJobRepo)
		outbox := new(MockOutboxRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		uc := newJobUsecase(jobs, outbox, members)
		job, err := uc.CreateJob(context.Background(), 7, domain.JobInput{
			Title:          "Backend Engineer",
			EmploymentType: domain.EmploymentTypeFullTime,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(42), job.CompanyID)
		assert.Equal(t, domain.JobStatusActive, job.Status)
		jobs.AssertExpectations(t)
	})

	t.Run("Should reject HR with no company binding", func(t *testing.T) {
		jobs := new(MockJobRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(0), domain.ErrNotFound)

		uc := newJobUsecase(jobs, new(MockOutboxRepo), members)
		_, err := uc.CreateJob(context.Background(), 7, domain.JobInput{
			Title:          "Backend Engineer",
			EmploymentType: domain.EmploymentTypeFullTime,
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
		jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject inverted salary range", func(t *testing.T) {
		jobs := new(MockJobRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)

		uc := newJobUsecase(jobs, new(MockOutboxRepo), members)
		_, err := uc.CreateJob(context.Background(), 7, domain.JobInput{
			Title:          "Backend Engineer",
			EmploymentType: domain.EmploymentTypeFullTime,
			SalaryMin:      floatPtr(900),
			SalaryMax:      floatPtr(500),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "salaryMin cannot be greater than salaryMax")
	})

	t.Run("Should reject unknown employment type", func(t *testing.T) {
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)

		uc := newJobUsecase(new(MockJobRepo), new(MockOutboxRepo), members)
		_, err := uc.CreateJob(context.Background(), 7, domain.JobInput{
			Title:          "Backend Engineer",
			EmploymentType: 9,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown employment type")
	})
}

func TestReplaceJob(t *testing.T) {
	oldJob := func() *domain.Job {
		return &domain.Job{
			ID:             10,
			CompanyID:      42,
			Title:          "Backend Engineer",
			Location:       "Berlin",
			EmploymentType: domain.EmploymentTypeFullTime,
			Description:    "v1",
			Status:         domain.JobStatusActive,
		}
	}

	t.Run("Should deactivate the old version, create a new one and enqueue the event", func(t *testing.T) {
		jobs := new(MockJobRepo)
		outbox := new(MockOutboxRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("GetByIDForCompany", mock.Anything, int64(10), int64(42)).Return(oldJob(), nil)
		jobs.On("Deactivate", mock.Anything, int64(10), int64(42)).Return(true, nil)
		outbox.On("Enqueue", mock.Anything, domain.EventJobDeactivated,
			domain.JobDeactivatedPayload{CompanyID: 42, JobID: 10}).Return(nil)
		jobs.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
			return j.Title == "Platform Engineer" && j.Description == "v1" &&
				j.Status == domain.JobStatusActive && j.CompanyID == 42
		})).Return(nil)

		uc := newJobUsecase(jobs, outbox, members)
		next, err := uc.ReplaceJob(context.Background(), 7, 10, domain.JobPatch{
			Title: strPtr("Platform Engineer"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Platform Engineer", next.Title)
		// Unpatched fields carry over from the previous version
		assert.Equal(t, "Berlin", next.Location)
		jobs.AssertExpectations(t)
		outbox.AssertExpectations(t)
	})

	t.Run("Should not enqueue an event when editing an already inactive version", func(t *testing.T) {
		inactive := oldJob()
		inactive.Status = domain.JobStatusInactive

		jobs := new(MockJobRepo)
		outbox := new(MockOutboxRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("GetByIDForCompany", mock.Anything, int64(10), int64(42)).Return(inactive, nil)
		jobs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		uc := newJobUsecase(jobs, outbox, members)
		next, err := uc.ReplaceJob(context.Background(), 7, 10, domain.JobPatch{})

		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusActive, next.Status)
		jobs.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything, mock.Anything)
		outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should hide other companies' jobs", func(t *testing.T) {
		jobs := new(MockJobRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("GetByIDForCompany", mock.Anything, int64(99), int64(42)).Return(nil, domain.ErrNotFound)

		uc := newJobUsecase(jobs, new(MockOutboxRepo), members)
		_, err := uc.ReplaceJob(context.Background(), 7, 99, domain.JobPatch{})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should validate the merged salary range, not just the patch", func(t *testing.T) {
		withSalary := oldJob()
		withSalary.SalaryMax = floatPtr(500)

		jobs := new(MockJobRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("GetByIDForCompany", mock.Anything, int64(10), int64(42)).Return(withSalary, nil)

		uc := newJobUsecase(jobs, new(MockOutboxRepo), members)
		_, err := uc.ReplaceJob(context.Background(), 7, 10, domain.JobPatch{
			SalaryMin: floatPtr(900),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "salaryMin cannot be greater than salaryMax")
		jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDeactivateJob(t *testing.T) {
	t.Run("Should flip the status and enqueue the event", func(t *testing.T) {
		jobs := new(MockJobRepo)
		outbox := new(MockOutboxRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("Deactivate", mock.Anything, int64(10), int64(42)).Return(true, nil)
		outbox.On("Enqueue", mock.Anything, domain.EventJobDeactivated,
			domain.JobDeactivatedPayload{CompanyID: 42, JobID: 10}).Return(nil)

		uc := newJobUsecase(jobs, outbox, members)
		err := uc.DeactivateJob(context.Background(), 7, 10)

		assert.NoError(t, err)
		outbox.AssertExpectations(t)
	})

	t.Run("Should be a silent no-op when the job is already inactive", func(t *testing.T) {
		jobs := new(MockJobRepo)
		outbox := new(MockOutboxRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("Deactivate", mock.Anything, int64(10), int64(42)).Return(false, nil)
		jobs.On("GetByIDForCompany", mock.Anything, int64(10), int64(42)).
			Return(&domain.Job{ID: 10, CompanyID: 42, Status: domain.JobStatusInactive}, nil)

		uc := newJobUsecase(jobs, outbox, members)
		err := uc.DeactivateJob(context.Background(), 7, 10)

		assert.NoError(t, err)
		outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should return not found for a job outside the HR's company", func(t *testing.T) {
		jobs := new(MockJobRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("Deactivate", mock.Anything, int64(99), int64(42)).Return(false, nil)
		jobs.On("GetByIDForCompany", mock.Anything, int64(99), int64(42)).Return(nil, domain.ErrNotFound)

		uc := newJobUsecase(jobs, new(MockOutboxRepo), members)
		err := uc.DeactivateJob(context.Background(), 7, 99)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestGetJobForEdit(t *testing.T) {
	t.Run("Should return the active version", func(t *testing.T) {
		jobs := new(MockJobRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("GetByIDForCompany", mock.Anything, int64(10), int64(42)).
			Return(&domain.Job{ID: 10, CompanyID: 42, Title: "Backend Engineer", Status: domain.JobStatusActive}, nil)

		uc := newJobUsecase(jobs, new(MockOutboxRepo), members)
		job, err := uc.GetJobForEdit(context.Background(), 7, 10)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), job.ID)
	})

	t.Run("Should return not found for a replaced version's old id", func(t *testing.T) {
		jobs := new(MockJobRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("GetByIDForCompany", mock.Anything, int64(10), int64(42)).
			Return(&domain.Job{ID: 10, CompanyID: 42, Status: domain.JobStatusInactive}, nil)

		uc := newJobUsecase(jobs, new(MockOutboxRepo), members)
		job, err := uc.GetJobForEdit(context.Background(), 7, 10)

		assert.Nil(t, job)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestGetActiveJob(t *testing.T) {
	t.Run("Should hide inactive versions from the public detail page", func(t *testing.T) {
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(10)).
			Return(&domain.Job{ID: 10, Status: domain.JobStatusInactive}, nil)

		uc := newJobUsecase(jobs, new(MockOutboxRepo), new(MockMembershipRepo))
		_, err := uc.GetActiveJob(context.Background(), 10)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestListCompanyJobs(t *testing.T) {
	t.Run("Should always scope the listing to the HR's own company", func(t *testing.T) {
		jobs := new(MockJobRepo)
		members := new(MockMembershipRepo)
		members.On("CompanyIDForHR", mock.Anything, int64(7)).Return(int64(42), nil)
		jobs.On("FetchByCompany", mock.Anything, int64(42), (*int)(nil), "", 10, 0).
			Return([]domain.Job{{ID: 1, CompanyID: 42}}, int64(1), nil)

		uc := newJobUsecase(jobs, new(MockOutboxRepo), members)
		list, total, err := uc.ListCompanyJobs(context.Background(), 7, nil, "", 1, 10)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, list, 1)
	})
}
