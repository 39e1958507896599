package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotedesk/internal/app/records"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// CatalogService manages each user's catalog of reusable products and services.
type CatalogService struct {
	userStore
	newID func() string
	locks *keyedMutex
}

// NewCatalogService creates a catalog service. It panics without a store.
func NewCatalogService(cfg StoreConfig) *CatalogService {
	return &CatalogService{
		userStore: newUserStore(cfg, "app.CatalogService"),
		newID:     newUUID,
		locks:     newKeyedMutex(),
	}
}

// List returns the user's catalog. A missing catalog is empty.
func (s *CatalogService) List(ctx context.Context, user string) ([]domain.CatalogEntry, error) {
	entries, _, err := records.Read[[]domain.CatalogEntry](ctx, s.store, s.namespace(user), records.KeyCatalog)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []domain.CatalogEntry{}
	}

	return entries, nil
}

// Replace overwrites the user's catalog wholesale.
func (s *CatalogService) Replace(ctx context.Context, user string, entries []domain.CatalogEntry) error {
	if entries == nil {
		entries = []domain.CatalogEntry{}
	}

	unlock := s.locks.Lock(user)
	defer unlock()

	return records.Write(ctx, s.store, s.namespace(user), records.KeyCatalog, entries)
}

// Upsert reconciles candidate into the catalog. The first entry with the
// same non-empty code, or the same description ignoring case, takes the
// candidate's price. Otherwise the candidate is appended. Repeating the same
// upsert leaves the catalog unchanged.
func (s *CatalogService) Upsert(ctx context.Context, user string, candidate domain.LineItem) (domain.CatalogEntry, error) {
	if err := domain.ValidateCatalogCandidate(candidate); err != nil {
		return domain.CatalogEntry{}, err
	}

	unlock := s.locks.Lock(user)
	defer unlock()

	entries, err := s.List(ctx, user)
	if err != nil {
		return domain.CatalogEntry{}, err
	}

	merged, entry, created := domain.MergeCatalog(entries, candidate, s.newID)

	if err := records.Write(ctx, s.store, s.namespace(user), records.KeyCatalog, merged); err != nil {
		return domain.CatalogEntry{}, err
	}

	s.metrics.CatalogUpserted(ctx, created)
	s.log(ctx).DebugContext(ctx, "catalog entry upserted",
		slog.String("entry_id", entry.ID),
		slog.Bool("created", created),
	)

	return entry, nil
}

// Delete removes the entry with id. Deleting a missing entry is a no-op.
func (s *CatalogService) Delete(ctx context.Context, user, id string) error {
	unlock := s.locks.Lock(user)
	defer unlock()

	entries, err := s.List(ctx, user)
	if err != nil {
		return err
	}

	kept, removed := domain.RemoveCatalogEntry(entries, id)
	if !removed {
		return nil
	}

	return records.Write(ctx, s.store, s.namespace(user), records.KeyCatalog, kept)
}

// Lookup finds the entry whose description equals description ignoring case.
func (s *CatalogService) Lookup(ctx context.Context, user, description string) (domain.CatalogEntry, bool, error) {
	entries, err := s.List(ctx, user)
	if err != nil {
		return domain.CatalogEntry{}, false, err
	}

	entry, ok := domain.FindByDescription(entries, description)

	return entry, ok, nil
}
