package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"

	"jobspring-backend/internal/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestApplicationRepo_Create_DuplicateMapsToDomainError(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewApplicationRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO applications")).
		WithArgs(int64(10), int64(3), "https://files/resume.pdf", (*string)(nil), domain.ApplicationStatusSubmitted, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err := repo.Create(context.Background(), &domain.Application{
		JobID:     10,
		UserID:    3,
		ResumeURL: "https://files/resume.pdf",
		Status:    domain.ApplicationStatusSubmitted,
	})

	if !errors.Is(err, domain.ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepo_InvalidateByJobID(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewApplicationRepository(mock)

	// One bulk statement rewrites every non-invalid row for the job
	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET status = $2 WHERE job_id = $1 AND status <> $2")).
		WithArgs(int64(10), domain.ApplicationStatusInvalid).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := repo.InvalidateByJobID(context.Background(), 10)
	if err != nil {
		t.Fatalf("InvalidateByJobID returned error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 rows rewritten, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepo_InvalidateByJobID_Idempotent(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewApplicationRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET status = $2 WHERE job_id = $1 AND status <> $2")).
		WithArgs(int64(10), domain.ApplicationStatusInvalid).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	n, err := repo.InvalidateByJobID(context.Background(), 10)
	if err != nil {
		t.Fatalf("InvalidateByJobID returned error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected redelivery to touch no rows, got %d", n)
	}
}

func TestApplicationRepo_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewApplicationRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET status = $2 WHERE id = $1")).
		WithArgs(int64(404), domain.ApplicationStatusPassed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateStatus(context.Background(), 404, domain.ApplicationStatusPassed)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
