// Package catalog sources car records: from the upstream catalog API when
// it is reachable, from the static fallback tables when it is not. Results
// are cached by request URL and narrowed by the filter pipeline.
package catalog

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/cache"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

// ErrNotFound is returned by Find when no car matches the id.
var ErrNotFound = errors.New("catalog: car not found")

// fallbackBaseURL keys cache entries when no upstream client is configured.
const fallbackBaseURL = "https://catalog.invalid"

// Source orchestrates one search: cache lookup, upstream fetch, fallback
// generation, record mapping, then the filter pipeline. The cache is an
// explicit handle, not ambient state.
//
// Concurrent requests for the same uncached key each fetch independently;
// there is no single-flight coalescing.
type Source struct {
	client *Client // nil when no upstream is configured
	cache  cache.Cache
	log    *log.Logger
	now    func() time.Time
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) SourceOption {
	return func(s *Source) { s.now = now }
}

// NewSource returns a Source. client may be nil, in which case every search
// is served by the fallback generator.
func NewSource(client *Client, c cache.Cache, logger *log.Logger, opts ...SourceOption) *Source {
	s := &Source{client: client, cache: c, log: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns the filtered, sorted, paginated result set for p.
func (s *Source) Search(ctx context.Context, p SearchParams) ([]dal.Car, error) {
	cars := s.load(ctx, p)
	return Apply(cars, p)
}

// load produces the unfiltered mapped set for p, consulting cache, upstream
// and fallback in that order.
func (s *Source) load(ctx context.Context, p SearchParams) []dal.Car {
	key := s.requestURL(p)
	if cars, ok := s.cache.Get(ctx, key); ok {
		return cars
	}

	records, err := s.fetch(ctx, p)
	if err != nil {
		s.log.Printf("upstream catalog unavailable, using fallback: %v", err)
		records = Generate(p.Brands, p.BodyTypes, s.now().Year())
	}

	cars := MapRecords(records)
	s.cache.Put(ctx, key, cars)
	return cars
}

func (s *Source) fetch(ctx context.Context, p SearchParams) ([]dal.CatalogRecord, error) {
	if s.client == nil {
		return nil, errors.New("no upstream catalog configured")
	}
	return s.client.Fetch(ctx, s.requestURL(p))
}

// requestURL builds the fully-qualified upstream URL for p; it is also the
// cache key, so two requests differing only in filters the upstream does
// not understand still share one upstream call.
func (s *Source) requestURL(p SearchParams) string {
	params := url.Values{}
	if len(p.Brands) > 0 {
		params.Set("make", strings.Join(p.Brands, ","))
	}
	if p.Query != "" {
		params.Set("q", p.Query)
	}
	if len(p.BodyTypes) > 0 {
		params.Set("type", strings.Join(p.BodyTypes, ","))
	}
	if s.client != nil {
		return s.client.SearchURL(params)
	}
	u := fallbackBaseURL + "/cars"
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// Find looks a car up by id: a direct upstream fetch first, then a scan of
// cached result sets, then one broad search.
func (s *Source) Find(ctx context.Context, id int) (dal.Car, error) {
	if s.client != nil {
		if rec, err := s.client.FetchByID(ctx, id); err == nil {
			return MapRecord(rec), nil
		}
	}

	var found *dal.Car
	s.cache.Scan(ctx, func(_ string, payload []dal.Car) bool {
		for _, c := range payload {
			if c.ID == id {
				car := c
				found = &car
				return false
			}
		}
		return true
	})
	if found != nil {
		return *found, nil
	}

	broad := NewSearchParams()
	broad.Limit = 100
	cars, err := s.Search(ctx, broad)
	if err != nil {
		return dal.Car{}, err
	}
	for _, c := range cars {
		if c.ID == id {
			return c, nil
		}
	}
	return dal.Car{}, ErrNotFound
}
