package app

import (
	"context"

	"github.com/jsamuelsen/quotedesk/internal/app/records"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// CompanyService stores one company profile per user.
type CompanyService struct {
	userStore
}

// NewCompanyService creates a company service. It panics without a store.
func NewCompanyService(cfg StoreConfig) *CompanyService {
	return &CompanyService{userStore: newUserStore(cfg, "app.CompanyService")}
}

// Get returns the user's profile. found is false when none was saved.
func (s *CompanyService) Get(ctx context.Context, user string) (profile domain.CompanyProfile, found bool, err error) {
	return records.Read[domain.CompanyProfile](ctx, s.store, s.namespace(user), records.KeyCompany)
}

// Set overwrites the user's profile.
func (s *CompanyService) Set(ctx context.Context, user string, profile domain.CompanyProfile) error {
	return records.Write(ctx, s.store, s.namespace(user), records.KeyCompany, profile)
}
