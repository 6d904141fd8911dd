package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/cache"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/catalog"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

// newTestServer serves the API with no upstream and no database: every
// search goes through the fallback generator.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	source := catalog.NewSource(nil, cache.NewMemory(), log.New(io.Discard, "", 0))
	server := newHTTPServer(source, nil, sessions.NewCookieStore([]byte("test-secret")))
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestSearchEndpoint(t *testing.T) {

	tests := []struct {
		name  string
		path  string
		check func(t *testing.T, cars []dal.Car)
	}{
		{
			name: "DefaultLimit",
			path: "/api/cars/search",
			check: func(t *testing.T, cars []dal.Car) {
				assert.Len(t, cars, 10)
			},
		},
		{
			name: "BrandAndBody",
			path: "/api/cars/search?brands=Toyota&bodyTypes=SUV&limit=10&offset=0",
			check: func(t *testing.T, cars []dal.Car) {
				require.NotEmpty(t, cars)
				assert.LessOrEqual(t, len(cars), 10)
				for i, c := range cars {
					assert.Equal(t, "Toyota", c.Brand)
					assert.Equal(t, "SUV", c.BodyType)
					if i > 0 {
						assert.LessOrEqual(t, cars[i-1].Price, c.Price)
					}
				}
			},
		},
		{
			name: "PriceWindow",
			path: "/api/cars/search?minPrice=28000&maxPrice=35000&limit=50",
			check: func(t *testing.T, cars []dal.Car) {
				for _, c := range cars {
					assert.GreaterOrEqual(t, c.Price, 28000)
					assert.LessOrEqual(t, c.Price, 35000)
				}
			},
		},
		{
			name: "MustangAlias",
			path: "/api/cars/search?query=mustang&limit=50",
			check: func(t *testing.T, cars []dal.Car) {
				require.NotEmpty(t, cars)
				for _, c := range cars {
					assert.Equal(t, "Ford", c.Brand)
					assert.Equal(t, "Mustang", c.Model)
				}
			},
		},
		{
			name: "FuelAndSeating",
			path: "/api/cars/search?fuelTypes=Petrol,Hybrid&seatingCapacity=7&limit=50",
			check: func(t *testing.T, cars []dal.Car) {
				for _, c := range cars {
					assert.Contains(t, []string{"Petrol", "Hybrid"}, c.FuelType)
					assert.Equal(t, 7, c.SeatingCapacity)
				}
			},
		},
	}

	ts := newTestServer(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cars []dal.Car
			status := getJSON(t, ts.URL+tc.path, &cars)
			require.Equal(t, http.StatusOK, status)
			tc.check(t, cars)
		})
	}
}

func TestSearchEndpointValidation(t *testing.T) {

	tests := []struct {
		name string
		path string
	}{
		{"LimitTooLarge", "/api/cars/search?limit=51"},
		{"LimitZero", "/api/cars/search?limit=0"},
		{"LimitNotANumber", "/api/cars/search?limit=ten"},
		{"NegativeOffset", "/api/cars/search?offset=-1"},
		{"NegativeMinPrice", "/api/cars/search?minPrice=-5"},
		{"BadSeating", "/api/cars/search?seatingCapacity=0"},
		{"UnknownSortField", "/api/cars/search?sortBy=horsepower"},
		{"UnknownSortOrder", "/api/cars/search?sortOrder=sideways"},
	}

	ts := newTestServer(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tc.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGetCarEndpoint(t *testing.T) {
	ts := newTestServer(t)

	id := catalog.CarID("Toyota", "Corolla", time.Now().Year())
	var car dal.Car
	status := getJSON(t, fmt.Sprintf("%s/api/cars/%d", ts.URL, id), &car)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, car.ID)
	assert.Equal(t, "Toyota", car.Brand)

	status = getJSON(t, ts.URL+"/api/cars/424242", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCarBrandsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var brands []string
	status := getJSON(t, ts.URL+"/api/car-brands", &brands)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, brands, "Toyota")
	assert.Contains(t, brands, "Tesla")
	assert.IsIncreasing(t, brands)
}

func TestCarTypesEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var types []string
	status := getJSON(t, ts.URL+"/api/car-types", &types)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, types, "Sedan")
	assert.Contains(t, types, "SUV")
}

func TestAuthEndpointsWithoutStore(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/register", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
