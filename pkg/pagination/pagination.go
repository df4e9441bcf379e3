package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 9
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 50
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta describes the resolved page of a listing response.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the page number to a minimum of one.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Normalize applies both page and limit normalization in one step.
func Normalize(params Params) Params {
	return Params{
		Page:  NormalizePage(params.Page),
		Limit: NormalizeLimit(params.Limit),
	}
}

// Offset translates the page/limit pair into a SQL offset.
func (p Params) Offset() int {
	return (NormalizePage(p.Page) - 1) * NormalizeLimit(p.Limit)
}

// NewMeta builds listing metadata from the resolved params and row count.
func NewMeta(params Params, total int64) Meta {
	normalized := Normalize(params)
	return Meta{
		Page:       normalized.Page,
		Limit:      normalized.Limit,
		Total:      total,
		TotalPages: TotalPages(total, normalized.Limit),
	}
}

// TotalPages returns how many pages the total row count spans.
func TotalPages(total int64, limit int) int {
	limit = NormalizeLimit(limit)
	if total <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
