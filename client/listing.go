package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
)

const (
	MinFilterAge    = 18
	MaxFilterAge    = 60
	DefaultPageSize = 9
)

// Filter is the listing query state. The zero values of the optional fields
// mean "not filtered"; MinAge/MaxAge at the absolute bounds likewise.
type Filter struct {
	Gender            string
	PermanentDivision string
	PresentDivision   string
	Sort              string
	MinAge            int
	MaxAge            int
	Page              int
}

// ListingPhase distinguishes the listing view states.
type ListingPhase int

const (
	PhaseLoading ListingPhase = iota
	PhaseReady
	PhaseEmpty
	PhaseError
)

// ListingEngine owns the biodata listing filter state, derives the backend
// query from it, and applies fetched pages. Overlapping fetches are guarded
// by a sequence number: only the latest fetch's result is applied.
type ListingEngine struct {
	api   *API
	limit int

	mu         sync.Mutex
	filter     Filter
	seq        uint64
	phase      ListingPhase
	items      []BiodataSummary
	total      int64
	totalPages int
	err        error
}

func NewListingEngine(api *API, limit int) (*ListingEngine, error) {
	if api == nil {
		return nil, errors.New("api is required")
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &ListingEngine{
		api:   api,
		limit: limit,
		filter: Filter{
			MinAge: MinFilterAge,
			MaxAge: MaxFilterAge,
			Page:   1,
		},
		phase: PhaseReady,
	}, nil
}

func (e *ListingEngine) Filter() Filter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

func (e *ListingEngine) Phase() ListingPhase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

func (e *ListingEngine) Items() []BiodataSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]BiodataSummary, len(e.items))
	copy(out, e.items)
	return out
}

func (e *ListingEngine) Total() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}

func (e *ListingEngine) TotalPages() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalPages
}

func (e *ListingEngine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *ListingEngine) SetGender(gender string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.Gender = gender
	e.filter.Page = 1
}

func (e *ListingEngine) SetPermanentDivision(division string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.PermanentDivision = division
	e.filter.Page = 1
}

func (e *ListingEngine) SetPresentDivision(division string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.PresentDivision = division
	e.filter.Page = 1
}

func (e *ListingEngine) SetSort(sort string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.Sort = sort
	e.filter.Page = 1
}

// SetAgeRange applies a new age window. Updates that fall outside the
// absolute bounds or invert the range are rejected without touching state.
func (e *ListingEngine) SetAgeRange(min, max int) error {
	if min < MinFilterAge || max > MaxFilterAge {
		return fmt.Errorf("age range must stay within %d..%d", MinFilterAge, MaxFilterAge)
	}
	if min > max {
		return fmt.Errorf("minimum age %d exceeds maximum age %d", min, max)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.MinAge = min
	e.filter.MaxAge = max
	e.filter.Page = 1
	return nil
}

// SetPage selects a page. Once a total is known, the selection is limited to
// the existing pages.
func (e *ListingEngine) SetPage(page int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if page < 1 {
		return fmt.Errorf("page %d is out of range", page)
	}
	if e.totalPages > 0 && page > e.totalPages {
		return fmt.Errorf("page %d is out of range (1..%d)", page, e.totalPages)
	}
	e.filter.Page = page
	return nil
}

// Query derives the backend query parameters, omitting unset and default
// fields. Page is always present.
func (e *ListingEngine) Query() url.Values {
	e.mu.Lock()
	defer e.mu.Unlock()
	return buildQuery(e.filter, e.limit)
}

func buildQuery(f Filter, limit int) url.Values {
	vals := url.Values{}
	if f.Gender != "" {
		vals.Set("gender", f.Gender)
	}
	if f.PermanentDivision != "" {
		vals.Set("permanentDivision", f.PermanentDivision)
	}
	if f.PresentDivision != "" {
		vals.Set("presentDivision", f.PresentDivision)
	}
	if f.MinAge > MinFilterAge {
		vals.Set("minAge", strconv.Itoa(f.MinAge))
	}
	if f.MaxAge < MaxFilterAge {
		vals.Set("maxAge", strconv.Itoa(f.MaxAge))
	}
	if f.Sort != "" {
		vals.Set("sort", f.Sort)
	}
	vals.Set("page", strconv.Itoa(f.Page))
	if limit != DefaultPageSize {
		vals.Set("limit", strconv.Itoa(limit))
	}
	return vals
}

// Fetch issues the listing request for the current filter state. Results of
// a fetch superseded by a later one are discarded.
func (e *ListingEngine) Fetch(ctx context.Context) error {
	seq, query := e.startFetch()
	page, err := e.api.ListBiodatas(ctx, query)
	if !e.applyResult(seq, page, err) {
		return nil
	}
	return err
}

func (e *ListingEngine) startFetch() (uint64, url.Values) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	e.phase = PhaseLoading
	e.err = nil
	return e.seq, buildQuery(e.filter, e.limit)
}

func (e *ListingEngine) applyResult(seq uint64, page *ListingPage, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq {
		return false
	}

	if err != nil {
		e.phase = PhaseError
		e.err = err
		e.items = nil
		return true
	}

	e.items = page.Biodatas
	e.total = page.Total
	e.totalPages = page.TotalPages
	if e.totalPages == 0 && page.Total > 0 {
		e.totalPages = int((page.Total + int64(e.limit) - 1) / int64(e.limit))
	}
	if len(page.Biodatas) == 0 {
		e.phase = PhaseEmpty
	} else {
		e.phase = PhaseReady
	}
	e.err = nil
	return true
}
