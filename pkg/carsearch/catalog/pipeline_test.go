package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

// fleet maps the full static catalog for pipeline tests; the mapper is
// deterministic, so this is the same set in every run.
func fleet() []dal.Car {
	return MapRecords(Generate(Brands(), nil, 2026))
}

func unpaged(p SearchParams) SearchParams {
	p.Limit = 0
	p.Offset = 0
	return p
}

func TestApplyPriceBounds(t *testing.T) {
	params := NewSearchParams()
	params.MinPrice = 28000
	params.MaxPrice = 33000
	params.Limit = 50

	cars, err := Apply(fleet(), params)
	require.NoError(t, err)
	require.NotEmpty(t, cars)
	for _, c := range cars {
		assert.GreaterOrEqual(t, c.Price, 28000)
		assert.LessOrEqual(t, c.Price, 33000)
	}
}

func TestApplyMinPriceOnly(t *testing.T) {
	params := NewSearchParams()
	params.MinPrice = 30000
	params.Limit = 50

	cars, err := Apply(fleet(), params)
	require.NoError(t, err)
	require.NotEmpty(t, cars)
	for _, c := range cars {
		assert.GreaterOrEqual(t, c.Price, 30000)
	}
}

func TestApplyBrandFilter(t *testing.T) {
	params := NewSearchParams()
	params.Brands = []string{"Toyota", "Honda"}
	params.Limit = 50

	cars, err := Apply(fleet(), params)
	require.NoError(t, err)
	require.NotEmpty(t, cars)
	for _, c := range cars {
		assert.Contains(t, params.Brands, c.Brand)
	}
}

func TestApplyFuelSeatingBodyFilters(t *testing.T) {
	params := NewSearchParams()
	params.FuelTypes = []string{dal.FuelPetrol, dal.FuelHybrid}
	params.SeatingCapacity = 7
	params.BodyTypes = []string{"SUV"}
	params.Limit = 50

	cars, err := Apply(fleet(), params)
	require.NoError(t, err)
	for _, c := range cars {
		assert.Contains(t, params.FuelTypes, c.FuelType)
		assert.Equal(t, 7, c.SeatingCapacity)
		assert.Equal(t, "SUV", c.BodyType)
	}
}

func TestApplyPagination(t *testing.T) {
	all := fleet()

	base := NewSearchParams()
	base.Brands = []string{"Toyota", "Honda", "Ford"}

	full, err := Apply(all, unpaged(base))
	require.NoError(t, err)
	require.Greater(t, len(full), 20)

	pageOne := base
	pageOne.Limit, pageOne.Offset = 10, 0
	first, err := Apply(all, pageOne)
	require.NoError(t, err)

	pageTwo := base
	pageTwo.Limit, pageTwo.Offset = 10, 10
	second, err := Apply(all, pageTwo)
	require.NoError(t, err)

	require.Len(t, first, 10)
	require.Len(t, second, 10)

	seen := map[int]bool{}
	for _, c := range first {
		seen[c.ID] = true
	}
	for _, c := range second {
		assert.False(t, seen[c.ID], "pages must be disjoint")
	}

	assert.Equal(t, full[:20], append(append([]dal.Car{}, first...), second...),
		"concatenated pages must equal the first 20 of the unpaginated list")
}

func TestApplyPaginationBeyondEnd(t *testing.T) {
	params := NewSearchParams()
	params.Brands = []string{"Toyota"}
	params.Offset = 1000

	cars, err := Apply(fleet(), params)
	require.NoError(t, err)
	assert.Empty(t, cars)
}

func TestApplyTextQuery(t *testing.T) {
	params := NewSearchParams()
	params.Query = "civic"
	params.Limit = 50

	cars, err := Apply(fleet(), params)
	require.NoError(t, err)
	require.NotEmpty(t, cars)
	for _, c := range cars {
		assert.Equal(t, "Honda", c.Brand)
		assert.Equal(t, "Civic", c.Model)
	}
}

func TestApplyQueryBrandModelConcatenation(t *testing.T) {
	params := NewSearchParams()
	params.Query = "ford mustang"
	params.Limit = 50

	cars, err := Apply(fleet(), params)
	require.NoError(t, err)
	require.NotEmpty(t, cars)
	for _, c := range cars {
		assert.Equal(t, "Ford", c.Brand)
		assert.Equal(t, "Mustang", c.Model)
	}
}

func TestApplyQueryAliasFallback(t *testing.T) {
	// "gtr" never substring-matches "GT-R"; the alias table must resolve it.
	params := NewSearchParams()
	params.Query = "gtr"
	params.Limit = 50

	cars, err := Apply(fleet(), params)
	require.NoError(t, err)
	require.NotEmpty(t, cars)
	for _, c := range cars {
		assert.Equal(t, "Nissan", c.Brand)
		assert.Equal(t, "GT-R", c.Model)
	}
}

func TestApplyQueryNoMatch(t *testing.T) {
	params := NewSearchParams()
	params.Query = "zeppelin"

	cars, err := Apply(fleet(), params)
	require.NoError(t, err)
	assert.Empty(t, cars)
}

func TestApplySortOrders(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		order   string
		compare func(t *testing.T, a, b dal.Car)
	}{
		{"PriceAsc", SortByPrice, SortAsc, func(t *testing.T, a, b dal.Car) {
			assert.LessOrEqual(t, a.Price, b.Price)
		}},
		{"PriceDesc", SortByPrice, SortDesc, func(t *testing.T, a, b dal.Car) {
			assert.GreaterOrEqual(t, a.Price, b.Price)
		}},
		{"YearAsc", SortByYear, SortAsc, func(t *testing.T, a, b dal.Car) {
			assert.LessOrEqual(t, a.Year, b.Year)
		}},
		{"MileageDesc", SortByMileage, SortDesc, func(t *testing.T, a, b dal.Car) {
			assert.GreaterOrEqual(t, a.Mileage, b.Mileage)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := NewSearchParams()
			params.SortBy = tc.sortBy
			params.SortOrder = tc.order
			params.Limit = 50

			cars, err := Apply(fleet(), params)
			require.NoError(t, err)
			require.NotEmpty(t, cars)
			for i := 1; i < len(cars); i++ {
				tc.compare(t, cars[i-1], cars[i])
			}
		})
	}
}

func TestApplyRejectsUnknownSort(t *testing.T) {
	params := NewSearchParams()
	params.SortBy = "horsepower"
	_, err := Apply(fleet(), params)
	assert.Error(t, err)

	params = NewSearchParams()
	params.SortOrder = "sideways"
	_, err = Apply(fleet(), params)
	assert.Error(t, err)
}
