package domain

import (
	"context"
	"errors"
	"time"
)

// Application status codes (integer, stable external contract).
// SUBMITTED → FILTERING → {PASSED | REJECTED}; INVALID is set by the system
// when the referenced job is deactivated; WITHDRAWN is set by the applicant.
const (
	ApplicationStatusSubmitted = 0
	ApplicationStatusFiltering = 1
	ApplicationStatusPassed    = 2
	ApplicationStatusRejected  = 3
	ApplicationStatusInvalid   = 4
	ApplicationStatusWithdrawn = 5
)

// ErrDuplicateApplication is returned by the store when an insert collides
// with the (job_id, user_id) uniqueness constraint.
var ErrDuplicateApplication = errors.New("application already exists")

// ApplicationStatusName returns the display name for a status code.
func ApplicationStatusName(status int) string {
	switch status {
	case ApplicationStatusSubmitted:
		return "submitted"
	case ApplicationStatusFiltering:
		return "filtering"
	case ApplicationStatusPassed:
		return "passed"
	case ApplicationStatusRejected:
		return "rejected"
	case ApplicationStatusInvalid:
		return "invalid"
	case ApplicationStatusWithdrawn:
		return "withdrawn"
	default:
		return ""
	}
}

// ValidApplicationStatus reports whether s is a known status code.
func ValidApplicationStatus(s int) bool {
	return s >= ApplicationStatusSubmitted && s <= ApplicationStatusWithdrawn
}

// TerminalApplicationStatus reports whether s accepts no further transitions.
func TerminalApplicationStatus(s int) bool {
	return s >= ApplicationStatusPassed
}

// Application pins the job version that was active at submission time; the
// job id it references never changes meaning, even after the posting is
// edited or withdrawn. Applications are never deleted, only terminal-stamped.
type Application struct {
	ID            int64     `json:"id"`
	JobID         int64     `json:"job_id"`
	UserID        int64     `json:"user_id"`
	ResumeURL     string    `json:"resume_url"`
	ResumeProfile *string   `json:"resume_profile,omitempty"`
	Status        int       `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
}

// ApplicationWithJob extends Application with joined job and applicant data
// needed by HR views and by authorization checks.
type ApplicationWithJob struct {
	Application
	JobTitle       string  `json:"job_title"`
	JobStatus      int     `json:"job_status"`
	JobCompanyID   int64   `json:"company_id"`
	CompanyName    *string `json:"company_name,omitempty"`
	ApplicantName  *string `json:"applicant_name,omitempty"`
	ApplicantEmail *string `json:"applicant_email,omitempty"`
}

// ApplicationForm carries the candidate-supplied fields of an apply call.
type ApplicationForm struct {
	ResumeProfile string
}

// ResumeUpload is an optional file attached to an apply call. It is only
// consulted when the candidate has no on-file resume URL.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByIDWithJob(ctx context.Context, id int64) (*ApplicationWithJob, error)
	Exists(ctx context.Context, jobID, userID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status int) error
	// InvalidateByJobID bulk-rewrites every non-invalid application of a job
	// to INVALID in a single statement. Idempotent: redelivery is a no-op.
	InvalidateByJobID(ctx context.Context, jobID int64) (int64, error)
	FetchByCompany(ctx context.Context, companyID int64, jobID *int64, status *int, limit, offset int) ([]ApplicationWithJob, int64, error)
	FetchByUser(ctx context.Context, userID int64, status *int, limit, offset int) ([]ApplicationWithJob, int64, error)
}

type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, userID, jobID int64, form ApplicationForm, upload *ResumeUpload) (int64, error)
	Withdraw(ctx context.Context, userID, applicationID int64) error
	ListMine(ctx context.Context, userID int64, status *int, page, pageSize int) ([]ApplicationWithJob, int64, error)

	// HR operations
	UpdateStatus(ctx context.Context, hrUserID, applicationID int64, newStatus int) (*ApplicationWithJob, error)
	ListCompanyApplications(ctx context.Context, hrUserID int64, companyID, jobID *int64, status *int, page, pageSize int) ([]ApplicationWithJob, int64, error)
	GetDetailForCompanyMember(ctx context.Context, hrUserID, applicationID int64) (*ApplicationWithJob, error)
}
