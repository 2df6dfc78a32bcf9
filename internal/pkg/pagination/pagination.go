package pagination

import "github.com/gofiber/fiber/v2"

const (
	// DefaultLimit is the page size when the client sends none
	DefaultLimit = 20
	// MaxLimit caps the page size a client may ask for
	MaxLimit = 100
)

// Params is a clamped page request. Offset is derived, never read from the client.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Meta describes the page that was returned
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetParams reads ?page= and ?limit= from the request
func GetParams(c *fiber.Ctx) *Params {
	return NewParams(c.QueryInt("page", 1), c.QueryInt("limit", DefaultLimit))
}

// NewParams clamps page and limit into range and computes the offset.
func NewParams(page, limit int) *Params {
	page = max(page, 1)
	if limit < 1 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetMeta calculates pagination metadata
func GetMeta(params *Params, total int64) *Meta {
	limit := int64(params.Limit)
	totalPages := int((total + limit - 1) / limit)

	return &Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// Response is one page of items. Data is always a JSON array, never null.
type Response[T any] struct {
	Data []T   `json:"data"`
	Meta *Meta `json:"meta"`
}

// NewResponse wraps a page of items with its metadata
func NewResponse[T any](items []T, params *Params, total int64) *Response[T] {
	if items == nil {
		items = []T{}
	}
	return &Response[T]{
		Data: items,
		Meta: GetMeta(params, total),
	}
}
