package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/memstore"
	"github.com/jsamuelsen/quotedesk/internal/domain"
	"github.com/jsamuelsen/quotedesk/internal/mocks"
)

type backupFixture struct {
	store   *memstore.Store
	company *CompanyService
	catalog *CatalogService
	history *QuoteHistoryService
	backup  *BackupService
}

func newBackupFixture() *backupFixture {
	store := memstore.New()
	cfg := storeConfig(store)

	f := &backupFixture{
		store:   store,
		company: NewCompanyService(cfg),
		catalog: newCatalog(store),
		history: newHistory(store),
	}
	f.backup = NewBackupService(cfg, f.company, f.catalog, f.history)
	f.backup.now = func() time.Time { return fixedNow }

	return f
}

func (f *backupFixture) seed(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, f.company.Set(ctx, testUser, domain.CompanyProfile{Name: "Acme"}))
	_, err := f.catalog.Upsert(ctx, testUser, domain.LineItem{Description: "Cable", UnitPrice: dec("10")})
	require.NoError(t, err)
	_, err = f.history.Save(ctx, testUser, sampleQuote("1234"))
	require.NoError(t, err)
}

func TestBackupService_ExportEmpty(t *testing.T) {
	f := newBackupFixture()

	data, err := f.backup.ExportJSON(context.Background(), testUser)
	require.NoError(t, err)

	assert.JSONEq(t, `{"company":null,"catalog":[],"quotes":[],"exportedAt":"2026-10-16T12:00:00.000Z"}`, string(data))
}

func TestBackupService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newBackupFixture()
	src.seed(t)

	data, err := src.backup.ExportJSON(ctx, testUser)
	require.NoError(t, err)

	dst := newBackupFixture()
	require.True(t, dst.backup.Import(ctx, "other", data))

	profile, found, err := dst.company.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Acme", profile.Name)

	entries, err := dst.catalog.List(ctx, "other")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cable", entries[0].Description)

	quotes, err := dst.history.List(ctx, "other")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.True(t, dec("22").Equal(quotes[0].TotalValue))

	again, err := dst.backup.ExportJSON(ctx, "other")
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestBackupService_ImportSections(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantCompany string
		wantCatalog int
		wantQuotes  int
	}{
		{name: "empty object changes nothing", doc: `{}`, wantCompany: "Acme", wantCatalog: 1, wantQuotes: 1},
		{name: "null company is untouched", doc: `{"company":null}`, wantCompany: "Acme", wantCatalog: 1, wantQuotes: 1},
		{name: "company only", doc: `{"company":{"name":"Beta"}}`, wantCompany: "Beta", wantCatalog: 1, wantQuotes: 1},
		{name: "empty catalog clears it", doc: `{"catalog":[]}`, wantCompany: "Acme", wantCatalog: 0, wantQuotes: 1},
		{name: "empty quotes clears them", doc: `{"quotes":[]}`, wantCompany: "Acme", wantCatalog: 1, wantQuotes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newBackupFixture()
			f.seed(t)

			require.True(t, f.backup.Import(ctx, testUser, []byte(tt.doc)))

			profile, _, err := f.company.Get(ctx, testUser)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCompany, profile.Name)

			entries, err := f.catalog.List(ctx, testUser)
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantCatalog)

			quotes, err := f.history.List(ctx, testUser)
			require.NoError(t, err)
			assert.Len(t, quotes, tt.wantQuotes)
		})
	}
}

func TestBackupService_ImportRejectsMalformed(t *testing.T) {
	for _, doc := range []string{`not json`, `null`, `[1,2]`, `"text"`, `{"catalog":"oops"}`} {
		t.Run(doc, func(t *testing.T) {
			ctx := context.Background()
			f := newBackupFixture()
			f.seed(t)

			before, err := f.backup.ExportJSON(ctx, testUser)
			require.NoError(t, err)

			assert.False(t, f.backup.Import(ctx, testUser, []byte(doc)))

			after, err := f.backup.ExportJSON(ctx, testUser)
			require.NoError(t, err)
			assert.JSONEq(t, string(before), string(after))
		})
	}
}

func TestBackupService_ImportReportsWriteFailure(t *testing.T) {
	store := mocks.NewMockKeyValueStore(t)
	store.EXPECT().Get(mock.Anything, "saas_"+testUser, "company").Return(nil, domain.ErrNotFound)
	store.EXPECT().Put(mock.Anything, "saas_"+testUser, "company", mock.Anything).Return(errors.New("read-only"))

	cfg := StoreConfig{Store: store, Logger: discardLogger()}
	svc := NewBackupService(cfg, NewCompanyService(cfg), NewCatalogService(cfg), NewQuoteHistoryService(cfg))

	doc, err := json.Marshal(map[string]any{"company": domain.CompanyProfile{Name: "Acme"}})
	require.NoError(t, err)

	assert.False(t, svc.Import(context.Background(), testUser, doc))
}

// companyFailStore rejects company profile writes.
type companyFailStore struct {
	*memstore.Store
}

func (s companyFailStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	if key == "company" {
		return errors.New("read-only")
	}

	return s.Store.Put(ctx, namespace, key, value)
}

func TestBackupService_ImportRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()

	cfg := StoreConfig{Store: companyFailStore{Store: mem}, Logger: discardLogger()}
	catalog := NewCatalogService(cfg)
	history := NewQuoteHistoryService(cfg)
	svc := NewBackupService(cfg, NewCompanyService(cfg), catalog, history)

	require.NoError(t, catalog.Replace(ctx, testUser, []domain.CatalogEntry{{ID: "c1", Description: "Pintura"}}))

	doc := `{"company":{"name":"Acme"},"catalog":[],"quotes":[{"id":"q1","number":"1"}]}`
	assert.False(t, svc.Import(ctx, testUser, []byte(doc)))

	entries, err := catalog.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Pintura", entries[0].Description)

	quotes, err := history.List(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestBackupService_ExportFailure(t *testing.T) {
	store := mocks.NewMockKeyValueStore(t)
	store.EXPECT().Get(mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.NewUnavailableError("storage", "closed")).Maybe()

	cfg := StoreConfig{Store: store, Logger: discardLogger()}
	svc := NewBackupService(cfg, NewCompanyService(cfg), NewCatalogService(cfg), NewQuoteHistoryService(cfg))

	_, err := svc.Export(context.Background(), testUser)
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}

func TestParallel3(t *testing.T) {
	a, b, c, err := Parallel3(context.Background(),
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (string, error) { return "two", nil },
		func(context.Context) (bool, error) { return true, nil },
	)
	require.NoError(t, err)
	assert.Equal(t, 1, a)
	assert.Equal(t, "two", b)
	assert.True(t, c)

	_, _, _, err = Parallel3(context.Background(),
		func(context.Context) (int, error) { return 0, errors.New("boom") },
		func(context.Context) (string, error) { return "", nil },
		func(context.Context) (bool, error) { return false, nil },
	)
	assert.ErrorContains(t, err, "boom")
}
