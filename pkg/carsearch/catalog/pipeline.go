package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

// Sort settings accepted by SearchParams.
const (
	SortByPrice   = "price"
	SortByYear    = "year"
	SortByMileage = "mileage"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// sortKeys maps a sortable field name to its less-than comparator.
// Field selection is an explicit enumeration; unknown names are rejected at
// validation instead of silently falling back to a default column.
var sortKeys = map[string]func(a, b dal.Car) bool{
	SortByPrice:   func(a, b dal.Car) bool { return a.Price < b.Price },
	SortByYear:    func(a, b dal.Car) bool { return a.Year < b.Year },
	SortByMileage: func(a, b dal.Car) bool { return a.Mileage < b.Mileage },
}

// SearchParams carries one search request through the pipeline. A negative
// MinPrice/MaxPrice means the bound is not set; a zero SeatingCapacity means
// no seating filter.
type SearchParams struct {
	Query           string
	Brands          []string
	MinPrice        int
	MaxPrice        int
	FuelTypes       []string
	SeatingCapacity int
	BodyTypes       []string
	SortBy          string
	SortOrder       string
	Limit           int
	Offset          int
}

// NewSearchParams returns params with no filters, default sort and paging.
func NewSearchParams() SearchParams {
	return SearchParams{
		MinPrice:  -1,
		MaxPrice:  -1,
		SortBy:    SortByPrice,
		SortOrder: SortAsc,
		Limit:     10,
	}
}

// ValidateSort checks the sort settings against the known enumeration.
func (p SearchParams) ValidateSort() error {
	if _, ok := sortKeys[p.SortBy]; !ok {
		return fmt.Errorf("unknown sort field %q", p.SortBy)
	}
	if p.SortOrder != SortAsc && p.SortOrder != SortDesc {
		return fmt.Errorf("unknown sort order %q", p.SortOrder)
	}
	return nil
}

// Apply runs the full filter chain over cars: text query, brand, price,
// fuel, seating and body filters, then sort and pagination.
func Apply(cars []dal.Car, p SearchParams) ([]dal.Car, error) {
	if err := p.ValidateSort(); err != nil {
		return nil, err
	}

	result := filterQuery(cars, p.Query)
	result = filterBrands(result, p.Brands)
	result = filterPrice(result, p.MinPrice, p.MaxPrice)
	result = filterSet(result, p.FuelTypes, func(c dal.Car) string { return c.FuelType })
	result = filterSeating(result, p.SeatingCapacity)
	result = filterSet(result, p.BodyTypes, func(c dal.Car) string { return c.BodyType })

	// Inactive stages pass their input through unchanged, so result may
	// still alias the caller's (or the cache's) backing array. Copy before
	// sorting in place.
	result = append([]dal.Car(nil), result...)

	less := sortKeys[p.SortBy]
	if p.SortOrder == SortDesc {
		asc := less
		less = func(a, b dal.Car) bool { return asc(b, a) }
	}
	sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })

	return paginate(result, p.Offset, p.Limit), nil
}

// filterQuery keeps cars matching q as a lower-cased substring of brand,
// model, body type, fuel type, year, or the "brand model" concatenation.
// A zero-hit primary pass falls through to the model-alias table.
func filterQuery(cars []dal.Car, q string) []dal.Car {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return cars
	}

	var matched []dal.Car
	for _, c := range cars {
		if queryMatches(c, q) {
			matched = append(matched, c)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	alias, ok := queryAliases[q]
	if !ok {
		return matched
	}
	for _, c := range cars {
		if c.Brand == alias.Brand && strings.Contains(strings.ToLower(c.Model), strings.ToLower(alias.Model)) {
			matched = append(matched, c)
		}
	}
	return matched
}

func queryMatches(c dal.Car, q string) bool {
	brand := strings.ToLower(c.Brand)
	model := strings.ToLower(c.Model)
	return strings.Contains(brand, q) ||
		strings.Contains(model, q) ||
		strings.Contains(strings.ToLower(c.BodyType), q) ||
		strings.Contains(strings.ToLower(c.FuelType), q) ||
		strings.Contains(strconv.Itoa(c.Year), q) ||
		strings.Contains(brand+" "+model, q)
}

func filterBrands(cars []dal.Car, brands []string) []dal.Car {
	if len(brands) == 0 {
		return cars
	}
	want := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		want[b] = struct{}{}
	}
	var out []dal.Car
	for _, c := range cars {
		if _, ok := want[c.Brand]; ok {
			out = append(out, c)
		}
	}
	return out
}

// filterPrice applies the min and max bounds independently; either may be
// unset (negative).
func filterPrice(cars []dal.Car, minPrice, maxPrice int) []dal.Car {
	if minPrice < 0 && maxPrice < 0 {
		return cars
	}
	var out []dal.Car
	for _, c := range cars {
		if minPrice >= 0 && c.Price < minPrice {
			continue
		}
		if maxPrice >= 0 && c.Price > maxPrice {
			continue
		}
		out = append(out, c)
	}
	return out
}

func filterSet(cars []dal.Car, values []string, field func(dal.Car) string) []dal.Car {
	if len(values) == 0 {
		return cars
	}
	want := make(map[string]struct{}, len(values))
	for _, v := range values {
		want[v] = struct{}{}
	}
	var out []dal.Car
	for _, c := range cars {
		if _, ok := want[field(c)]; ok {
			out = append(out, c)
		}
	}
	return out
}

func filterSeating(cars []dal.Car, seats int) []dal.Car {
	if seats <= 0 {
		return cars
	}
	var out []dal.Car
	for _, c := range cars {
		if c.SeatingCapacity == seats {
			out = append(out, c)
		}
	}
	return out
}

func paginate(cars []dal.Car, offset, limit int) []dal.Car {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(cars) {
		return []dal.Car{}
	}
	end := offset + limit
	if limit <= 0 || end > len(cars) {
		end = len(cars)
	}
	return cars[offset:end]
}
