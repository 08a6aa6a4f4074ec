package usecase

import (
	"context"
	"errors"

	"jobspring-backend/internal/domain"
	"jobspring-backend/pkg/apperror"
)

type scopeResolver struct {
	membershipRepo domain.MembershipRepository
}

// NewScopeResolver creates the authorization scope resolver. Every mutating
// job/application operation derives the acting HR's company through it
// instead of trusting a client-supplied company id.
func NewScopeResolver(membershipRepo domain.MembershipRepository) domain.ScopeResolver {
	return &scopeResolver{membershipRepo: membershipRepo}
}

func (s *scopeResolver) CompanyIDForHR(ctx context.Context, userID int64) (int64, error) {
	companyID, err := s.membershipRepo.CompanyIDForHR(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, apperror.Forbidden("HR is not bound to any company")
		}
		return 0, apperror.Internal(err)
	}
	return companyID, nil
}

// AssertHROwnsCompany cross-checks a client-supplied company id against
// membership data; it never substitutes one for the other.
func (s *scopeResolver) AssertHROwnsCompany(ctx context.Context, userID, companyID int64) error {
	ok, err := s.membershipRepo.IsHROfCompany(ctx, userID, companyID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.Forbidden("You are not an HR member of this company")
	}
	return nil
}
