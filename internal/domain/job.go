package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job lifecycle status codes (stable external contract).
const (
	JobStatusActive   = 0
	JobStatusInactive = 1
)

// Employment type codes (stable external contract).
const (
	EmploymentTypeFullTime   = 1
	EmploymentTypeInternship = 2
	EmploymentTypeContract   = 3
)

// EmploymentTypeName returns the display name for an employment type code.
func EmploymentTypeName(t int) string {
	switch t {
	case EmploymentTypeFullTime:
		return "full-time"
	case EmploymentTypeInternship:
		return "internship"
	case EmploymentTypeContract:
		return "contract"
	default:
		return ""
	}
}

// ValidEmploymentType reports whether t is a known employment type code.
func ValidEmploymentType(t int) bool {
	return t >= EmploymentTypeFullTime && t <= EmploymentTypeContract
}

// Job is a single version of a posting. A row never changes after insert
// except for Status: editing a posting inserts a new row and flips the old
// one to inactive, so every job id stays addressable forever.
type Job struct {
	ID             int64     `json:"id"`
	CompanyID      int64     `json:"company_id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	EmploymentType int       `json:"employment_type"`
	SalaryMin      *float64  `json:"salary_min,omitempty"`
	SalaryMax      *float64  `json:"salary_max,omitempty"`
	Description    string    `json:"description"`
	Status         int       `json:"status"`
	PostedAt       time.Time `json:"posted_at"`

	// Joined data for board/list responses
	CompanyName *string `json:"company_name,omitempty"`
}

// JobInput carries the fields needed to create a posting.
type JobInput struct {
	Title          string   `validate:"required"`
	Location       string   `validate:"max=255"`
	EmploymentType int      `validate:"required"`
	SalaryMin      *float64 `validate:"omitempty,gte=0"`
	SalaryMax      *float64 `validate:"omitempty,gte=0"`
	Description    string
}

// JobPatch carries the fields an edit overlays onto the previous version.
// Nil means "keep the old value".
type JobPatch struct {
	Title          *string
	Location       *string
	EmploymentType *int
	SalaryMin      *float64
	SalaryMax      *float64
	Description    *string
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	// GetByIDForShare reads the job under a row share lock. Inside a
	// transaction, a concurrent status flip on the same row either commits
	// first and is observed here, or waits until this transaction ends.
	GetByIDForShare(ctx context.Context, id int64) (*Job, error)
	GetByIDForCompany(ctx context.Context, id, companyID int64) (*Job, error)
	// Deactivate flips an ACTIVE row to INACTIVE. It reports whether the
	// transition actually happened (false for missing, foreign or already
	// inactive rows).
	Deactivate(ctx context.Context, id, companyID int64) (bool, error)
	FetchByCompany(ctx context.Context, companyID int64, status *int, keyword string, limit, offset int) ([]Job, int64, error)
	FetchActive(ctx context.Context, keyword string, limit, offset int) ([]Job, int64, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, hrUserID int64, input JobInput) (*Job, error)
	ReplaceJob(ctx context.Context, hrUserID, jobID int64, patch JobPatch) (*Job, error)
	DeactivateJob(ctx context.Context, hrUserID, jobID int64) error
	GetJobForEdit(ctx context.Context, hrUserID, jobID int64) (*Job, error)
	GetActiveJob(ctx context.Context, jobID int64) (*Job, error)
	ListCompanyJobs(ctx context.Context, hrUserID int64, status *int, keyword string, page, pageSize int) ([]Job, int64, error)
	ListActiveJobs(ctx context.Context, keyword string, page, pageSize int) ([]Job, int64, error)
}
