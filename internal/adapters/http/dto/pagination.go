package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// DefaultLimit is the default number of items per page.
const DefaultLimit = 20

// MaxLimit is the maximum allowed items per page.
const MaxLimit = 100

// ErrInvalidCursor is returned when a cursor cannot be decoded or no longer
// points at an item in the list.
var ErrInvalidCursor = errors.New("invalid cursor")

// PaginationRequest represents pagination parameters from the request.
type PaginationRequest struct {
	// Cursor is an opaque string from a previous response's NextCursor.
	Cursor string `form:"cursor"`

	// Limit is the maximum number of items to return (1-100, default 20).
	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the limit with defaults applied.
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}

	return min(p.Limit, MaxLimit)
}

// PaginatedResponse is a generic paginated response structure.
type PaginatedResponse[T any] struct {
	Items []T `json:"items"`

	// NextCursor is empty on the last page.
	NextCursor string `json:"nextCursor,omitempty"`

	HasMore bool `json:"hasMore"`
}

// cursorData is the payload behind an opaque cursor: the id of the last item
// of the previous page.
type cursorData struct {
	ID string `json:"id"`
}

// EncodeCursor encodes the id of the last item served.
func EncodeCursor(id string) string {
	if id == "" {
		return ""
	}

	b, _ := json.Marshal(cursorData{ID: id}) //nolint:errchkjson // plain string struct

	return base64.URLEncoding.EncodeToString(b)
}

// DecodeCursor returns the id encoded in cursor.
func DecodeCursor(encoded string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCursor
	}

	var data cursorData
	if err := json.Unmarshal(raw, &data); err != nil || data.ID == "" {
		return "", ErrInvalidCursor
	}

	return data.ID, nil
}

// Paginate slices an already ordered list. The page starts right after the
// item the cursor names. A cursor naming an item that is no longer in the
// list is rejected, so callers restart from the first page.
func Paginate[T any](items []T, req PaginationRequest, idOf func(T) string) (*PaginatedResponse[T], error) {
	start := 0

	if req.Cursor != "" {
		id, err := DecodeCursor(req.Cursor)
		if err != nil {
			return nil, err
		}

		start = -1

		for i, item := range items {
			if idOf(item) == id {
				start = i + 1
				break
			}
		}

		if start < 0 {
			return nil, ErrInvalidCursor
		}
	}

	limit := req.GetLimit()
	end := min(start+limit, len(items))

	page := make([]T, end-start)
	copy(page, items[start:end])

	resp := &PaginatedResponse[T]{Items: page, HasMore: end < len(items)}
	if resp.HasMore && len(page) > 0 {
		resp.NextCursor = EncodeCursor(idOf(page[len(page)-1]))
	}

	return resp, nil
}
