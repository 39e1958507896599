package cli

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedesk/internal/adapters/access"
	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/memstore"
	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/domain"
	"github.com/jsamuelsen/quotedesk/internal/platform/config"
)

const testUser = "device_owner_v1"

type harness struct {
	env      *Env
	out, err *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	env := &Env{
		Services: app.NewServices(app.ServicesConfig{
			StoreConfig: app.StoreConfig{
				Store:  memstore.New(),
				Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			},
			Validator: access.NewAllowList(config.DefaultAccessCodes),
		}),
		User:     testUser,
		Currency: DefaultCurrency,
		Out:      out,
		Err:      errOut,
		Now:      func() time.Time { return time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC) },
	}

	return &harness{env: env, out: out, err: errOut}
}

// run executes one command line the way quotectl's main does.
func (h *harness) run(args ...string) subcommands.ExitStatus {
	h.out.Reset()
	h.err.Reset()

	top := flag.NewFlagSet("quotectl", flag.ContinueOnError)
	top.SetOutput(io.Discard)

	commander := subcommands.NewCommander(top, "quotectl")
	commander.Output = h.out
	commander.Error = h.err
	Register(commander, h.env)

	if err := top.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}

	return commander.Execute(context.Background())
}

func (h *harness) activate(t *testing.T) {
	t.Helper()
	require.Equal(t, subcommands.ExitSuccess, h.run("activate", "vip2024"))
}

func (h *harness) saveQuote(t *testing.T) domain.SavedQuote {
	t.Helper()

	discount := decimal.NewFromInt(3)
	saved, err := h.env.Services.History.Save(context.Background(), testUser, domain.Quote{
		Number: "4821",
		Date:   "16/10/2026",
		Client: domain.ClientInfo{Name: "Maria", Mobile: "11999990000"},
		Items: []domain.LineItem{
			{ID: "a", Description: "Cable", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
			{ID: "b", Description: "Labor", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)},
		},
		Discount: &discount,
	})
	require.NoError(t, err)

	return saved
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{amount: "22", code: "BRL", want: "22,00"},
		{amount: "1234.565", code: "BRL", want: "1.234,57"},
		{amount: "9.5", code: "USD", want: "9.50"},
		{amount: "7", code: "XXX-unknown", want: "7,00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.code, func(t *testing.T) {
			assert.Contains(t, FormatMoney(decimal.RequireFromString(tt.amount), tt.code), tt.want)
		})
	}
}

func TestStatusAndActivate(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, subcommands.ExitFailure, h.run("status"))
	assert.Contains(t, h.out.String(), "not activated")

	assert.Equal(t, subcommands.ExitFailure, h.run("activate", "NOPE"))
	assert.Contains(t, h.err.String(), "invalid or unknown activation code")

	assert.Equal(t, subcommands.ExitUsageError, h.run("activate"))

	assert.Equal(t, subcommands.ExitSuccess, h.run("activate", " vip2024 "))
	assert.Contains(t, h.out.String(), "valid, 30 day(s) left")

	assert.Equal(t, subcommands.ExitSuccess, h.run("status"))
}

func TestGatedCommandsRequireActivation(t *testing.T) {
	h := newHarness(t)

	for _, name := range []string{"history", "catalog", "export", "import", "delete-quote", "reopen"} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, subcommands.ExitFailure, h.run(name, "x"))
			assert.Contains(t, h.err.String(), "access none")
		})
	}
}

func TestHistoryAndDelete(t *testing.T) {
	h := newHarness(t)
	h.activate(t)

	assert.Equal(t, subcommands.ExitSuccess, h.run("history"))
	assert.Contains(t, h.out.String(), "no saved quotes")

	saved := h.saveQuote(t)

	assert.Equal(t, subcommands.ExitSuccess, h.run("history"))
	assert.Contains(t, h.out.String(), saved.ID)
	assert.Contains(t, h.out.String(), "Maria")
	assert.Contains(t, h.out.String(), "22,00")

	assert.Equal(t, subcommands.ExitSuccess, h.run("delete-quote", saved.ID))
	assert.Equal(t, subcommands.ExitSuccess, h.run("delete-quote", saved.ID), "deleting twice is a no-op")

	quotes, err := h.env.Services.History.List(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestReopenSavesACopy(t *testing.T) {
	h := newHarness(t)
	h.activate(t)
	original := h.saveQuote(t)

	assert.Equal(t, subcommands.ExitSuccess, h.run("reopen", "-number", "5000", original.ID))
	assert.Contains(t, h.out.String(), "Orcamento_5000.pdf")

	quotes, err := h.env.Services.History.List(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	copied := quotes[0]
	assert.NotEqual(t, original.ID, copied.ID)
	assert.Equal(t, "5000", copied.Number)
	assert.Contains(t, h.out.String(), "saved "+original.ID+" as "+copied.ID)
	assert.Equal(t, "16/10/2026", copied.Date)
	assert.True(t, copied.TotalValue.Equal(original.TotalValue))
	assert.Equal(t, original.ID, quotes[1].ID, "original record is untouched")
	assert.Equal(t, "4821", quotes[1].Number)

	assert.Equal(t, subcommands.ExitFailure, h.run("reopen", "missing"))
}

func TestCatalog(t *testing.T) {
	h := newHarness(t)
	h.activate(t)

	assert.Equal(t, subcommands.ExitSuccess, h.run("catalog"))
	assert.Contains(t, h.out.String(), "catalog is empty")

	_, err := h.env.Services.Catalog.Upsert(context.Background(), testUser, domain.LineItem{
		Code: "C1", Description: "Cable", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	assert.Equal(t, subcommands.ExitSuccess, h.run("catalog"))
	assert.Contains(t, h.out.String(), "Cable")
	assert.Contains(t, h.out.String(), "10,00")
}

func TestExportImport(t *testing.T) {
	h := newHarness(t)
	h.activate(t)
	h.saveQuote(t)

	file := filepath.Join(t.TempDir(), "backup.json")

	require.Equal(t, subcommands.ExitSuccess, h.run("export", "-o", file))
	assert.Contains(t, h.out.String(), file)

	require.Equal(t, subcommands.ExitSuccess, h.run("export", "-o", "-"))
	assert.Contains(t, h.out.String(), `"exportedAt"`)

	h.env.User = "restorer"
	require.Equal(t, subcommands.ExitSuccess, h.run("import", file))

	quotes, err := h.env.Services.History.List(context.Background(), "restorer")
	require.NoError(t, err)
	assert.Len(t, quotes, 1)

	garbage := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("[1,2]"), 0o600))

	assert.Equal(t, subcommands.ExitFailure, h.run("import", garbage))
	assert.Contains(t, h.err.String(), "could not be imported")

	assert.Equal(t, subcommands.ExitFailure, h.run("import", filepath.Join(t.TempDir(), "missing.json")))
}
