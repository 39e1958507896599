package app

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/jsamuelsen/quotedesk/internal/app/records"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// QuoteHistoryService keeps each user's saved quotes, newest first.
// Saved quotes are immutable; there is no update.
type QuoteHistoryService struct {
	userStore
	newID func() string
	now   func() time.Time
	locks *keyedMutex
}

// NewQuoteHistoryService creates a history service. It panics without a store.
func NewQuoteHistoryService(cfg StoreConfig) *QuoteHistoryService {
	return &QuoteHistoryService{
		userStore: newUserStore(cfg, "app.QuoteHistoryService"),
		newID:     newUUID,
		now:       time.Now,
		locks:     newKeyedMutex(),
	}
}

// List returns the user's saved quotes, newest first.
func (s *QuoteHistoryService) List(ctx context.Context, user string) ([]domain.SavedQuote, error) {
	quotes, _, err := records.Read[[]domain.SavedQuote](ctx, s.store, s.namespace(user), records.KeyQuotes)
	if err != nil {
		return nil, err
	}

	if quotes == nil {
		quotes = []domain.SavedQuote{}
	}

	return quotes, nil
}

// Get returns the saved quote with id.
func (s *QuoteHistoryService) Get(ctx context.Context, user, id string) (domain.SavedQuote, error) {
	quotes, err := s.List(ctx, user)
	if err != nil {
		return domain.SavedQuote{}, err
	}

	i := slices.IndexFunc(quotes, func(q domain.SavedQuote) bool { return q.ID == id })
	if i < 0 {
		return domain.SavedQuote{}, domain.NewNotFoundError(domain.EntityQuote, id)
	}

	return quotes[i], nil
}

// Save freezes quote into the history with a fresh id, the current time and
// its total computed once.
func (s *QuoteHistoryService) Save(ctx context.Context, user string, quote domain.Quote) (domain.SavedQuote, error) {
	if err := quote.Validate(); err != nil {
		return domain.SavedQuote{}, err
	}

	saved := domain.NewSavedQuote(quote, s.newID(), s.now().UnixMilli())

	unlock := s.locks.Lock(user)
	defer unlock()

	quotes, err := s.List(ctx, user)
	if err != nil {
		return domain.SavedQuote{}, err
	}

	if err := records.Write(ctx, s.store, s.namespace(user), records.KeyQuotes, append([]domain.SavedQuote{saved}, quotes...)); err != nil {
		return domain.SavedQuote{}, err
	}

	s.metrics.QuoteSaved(ctx)
	s.log(ctx).InfoContext(ctx, "quote saved",
		slog.String("quote_id", saved.ID),
		slog.String("quote_number", saved.Number),
		slog.String("total", saved.TotalValue.StringFixed(2)),
	)

	return saved, nil
}

// Delete removes the saved quote with id. Deleting a missing quote is a no-op.
func (s *QuoteHistoryService) Delete(ctx context.Context, user, id string) error {
	unlock := s.locks.Lock(user)
	defer unlock()

	quotes, err := s.List(ctx, user)
	if err != nil {
		return err
	}

	kept := slices.DeleteFunc(slices.Clone(quotes), func(q domain.SavedQuote) bool { return q.ID == id })
	if len(kept) == len(quotes) {
		return nil
	}

	return records.Write(ctx, s.store, s.namespace(user), records.KeyQuotes, kept)
}
