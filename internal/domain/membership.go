package domain

import "context"

// RoleHR is the membership role tag that grants company-scoped mutations.
const RoleHR = "HR"

// CompanyMember binds a user to the single company whose postings and
// applications they may mutate. Consumed read-only by this core.
type CompanyMember struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	CompanyID int64  `json:"company_id"`
	Role      string `json:"role"`
}

type MembershipRepository interface {
	// CompanyIDForHR resolves the company an HR user belongs to.
	// Returns ErrNotFound when the user has no HR membership.
	CompanyIDForHR(ctx context.Context, userID int64) (int64, error)
	IsHROfCompany(ctx context.Context, userID, companyID int64) (bool, error)
	HREmailsByCompany(ctx context.Context, companyID int64) ([]string, error)
}

// ScopeResolver binds an acting HR user to the company whose resources they
// may mutate. Every mutating job/application operation re-derives the
// company from membership data instead of trusting a client-supplied id.
type ScopeResolver interface {
	CompanyIDForHR(ctx context.Context, userID int64) (int64, error)
	AssertHROwnsCompany(ctx context.Context, userID, companyID int64) error
}
