package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobspring-backend/internal/domain"
)

// Mock Repositories

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetByIDForShare(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetByIDForCompany(ctx context.Context, id, companyID int64) (*domain.Job, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Deactivate(ctx context.Context, id, companyID int64) (bool, error) {
	args := m.Called(ctx, id, companyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepo) FetchByCompany(ctx context.Context, companyID int64, status *int, keyword string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, companyID, status, keyword, limit, offset)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	return jobs, args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchActive(ctx context.Context, keyword string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, keyword, limit, offset)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	return jobs, args.Get(1).(int64), args.Error(2)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByIDWithJob(ctx context.Context, id int64) (*domain.ApplicationWithJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationWithJob), args.Error(1)
}

func (m *MockApplicationRepo) Exists(ctx context.Context, jobID, userID int64) (bool, error) {
	args := m.Called(ctx, jobID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status int) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockApplicationRepo) InvalidateByJobID(ctx context.Context, jobID int64) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepo) FetchByCompany(ctx context.Context, companyID int64, jobID *int64, status *int, limit, offset int) ([]domain.ApplicationWithJob, int64, error) {
	args := m.Called(ctx, companyID, jobID, status, limit, offset)
	var apps []domain.ApplicationWithJob
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.ApplicationWithJob)
	}
	return apps, args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicationRepo) FetchByUser(ctx context.Context, userID int64, status *int, limit, offset int) ([]domain.ApplicationWithJob, int64, error) {
	args := m.Called(ctx, userID, status, limit, offset)
	var apps []domain.ApplicationWithJob
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.ApplicationWithJob)
	}
	return apps, args.Get(1).(int64), args.Error(2)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) ResumeURLByUserID(ctx context.Context, userID int64) (*string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) CompanyIDForHR(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipRepo) IsHROfCompany(ctx context.Context, userID, companyID int64) (bool, error) {
	args := m.Called(ctx, userID, companyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepo) HREmailsByCompany(ctx context.Context, companyID int64) ([]string, error) {
	args := m.Called(ctx, companyID)
	var emails []string
	if args.Get(0) != nil {
		emails = args.Get(0).([]string)
	}
	return emails, args.Error(1)
}

type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Enqueue(ctx context.Context, eventType string, payload any) error {
	return m.Called(ctx, eventType, payload).Error(0)
}

func (m *MockOutboxRepo) FetchPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	var events []domain.OutboxEvent
	if args.Get(0) != nil {
		events = args.Get(0).([]domain.OutboxEvent)
	}
	return events, args.Error(1)
}

func (m *MockOutboxRepo) MarkDelivered(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOutboxRepo) RecordFailure(ctx context.Context, id int64, lastError string, maxAttempts int) error {
	return m.Called(ctx, id, lastError, maxAttempts).Error(0)
}

// fakeTx runs the function directly; the usecases only care that the
// callback is executed with the same context semantics.
type fakeTx struct{}

func (fakeTx) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
