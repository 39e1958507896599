package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotedesk/internal/app/records"
	"github.com/jsamuelsen/quotedesk/internal/app/staging"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// BackupService exports and imports everything a user owns as one document.
type BackupService struct {
	userStore
	company *CompanyService
	catalog *CatalogService
	history *QuoteHistoryService
	now     func() time.Time
}

// NewBackupService creates a backup service over the given services, which
// must share cfg.Store.
func NewBackupService(cfg StoreConfig, company *CompanyService, catalog *CatalogService, history *QuoteHistoryService) *BackupService {
	if company == nil || catalog == nil || history == nil {
		panic("app: BackupService requires company, catalog and history services")
	}

	return &BackupService{
		userStore: newUserStore(cfg, "app.BackupService"),
		company:   company,
		catalog:   catalog,
		history:   history,
		now:       time.Now,
	}
}

// Export gathers the user's company profile, catalog and history.
func (s *BackupService) Export(ctx context.Context, user string) (domain.BackupDocument, error) {
	company, catalog, quotes, err := Parallel3(ctx,
		func(ctx context.Context) (*domain.CompanyProfile, error) {
			profile, found, err := s.company.Get(ctx, user)
			if err != nil || !found {
				return nil, err
			}

			return &profile, nil
		},
		func(ctx context.Context) ([]domain.CatalogEntry, error) { return s.catalog.List(ctx, user) },
		func(ctx context.Context) ([]domain.SavedQuote, error) { return s.history.List(ctx, user) },
	)
	if err != nil {
		return domain.BackupDocument{}, fmt.Errorf("exporting backup: %w", err)
	}

	return domain.NewBackupDocument(company, catalog, quotes, s.now()), nil
}

// ExportJSON is Export encoded as indented JSON.
func (s *BackupService) ExportJSON(ctx context.Context, user string) ([]byte, error) {
	doc, err := s.Export(ctx, user)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Import restores a document produced by Export. The whole document is parsed
// before anything is written; a malformed document changes nothing. Each
// present section overwrites the stored one and absent sections are left as
// they are. The section writes are applied as one batch: when any of them
// fails, the sections already written get their previous contents back and
// Import reports false.
func (s *BackupService) Import(ctx context.Context, user string, data []byte) bool {
	logger := s.log(ctx)

	doc, err := domain.ParseBackup(data)
	if err != nil {
		s.metrics.BackupImported(ctx, false)
		logger.WarnContext(ctx, "backup rejected", slog.Any("error", err))

		return false
	}

	batch, err := s.stage(user, doc)
	if err == nil {
		unlockCatalog := s.catalog.locks.Lock(user)
		unlockHistory := s.history.locks.Lock(user)
		err = batch.Commit(ctx)

		unlockHistory()
		unlockCatalog()
	}

	ok := err == nil
	if !ok {
		logger.ErrorContext(ctx, "backup not restored", slog.Any("error", err))
	}

	s.metrics.BackupImported(ctx, ok)
	logger.InfoContext(ctx, "backup imported",
		slog.Bool("ok", ok),
		slog.Bool("company", doc.Company != nil),
		slog.Bool("catalog", doc.Catalog != nil),
		slog.Bool("quotes", doc.Quotes != nil),
	)

	return ok
}

// emptyList is what an absent list section rolls back to.
var emptyList = []byte("[]")

// stage encodes the present sections. The company profile goes last because a
// profile that did not exist before cannot be rolled back.
func (s *BackupService) stage(user string, doc domain.BackupDocument) (*staging.Batch, error) {
	ns := s.namespace(user)
	batch := staging.New()

	add := func(key string, value any, empty []byte) error {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}

		return batch.Add(staging.Put(s.store, ns, key, data, empty))
	}

	if doc.Catalog != nil {
		if err := add(records.KeyCatalog, nonNil(*doc.Catalog), emptyList); err != nil {
			return nil, err
		}
	}

	if doc.Quotes != nil {
		if err := add(records.KeyQuotes, nonNil(*doc.Quotes), emptyList); err != nil {
			return nil, err
		}
	}

	if doc.Company != nil {
		if err := add(records.KeyCompany, doc.Company, nil); err != nil {
			return nil, err
		}
	}

	return batch, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
