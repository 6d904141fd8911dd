package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/catalog"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/store"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// SearchCars defines a GET handler for /api/cars/search.
func (h *httpServer) SearchCars(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()

	params, err := validateSearchParams(w, vars)
	if err != nil {
		h.log.Printf("search validation failed: %v", err)
		return
	}

	var cars []dal.Car
	if h.store != nil {
		cars, err = h.store.SearchCars(r.Context(), params)
	} else {
		cars, err = h.source.Search(r.Context(), params)
	}
	if err != nil {
		h.log.Printf("search failed: %v", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if cars == nil {
		cars = []dal.Car{}
	}
	writeJSON(w, http.StatusOK, cars)
}

// GetCar defines a GET handler for /api/cars/{id}.
func (h *httpServer) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be a number")
		return
	}

	if h.store != nil {
		car, err := h.store.GetCar(r.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "car not found")
		case err != nil:
			h.log.Printf("car lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "car lookup failed")
		default:
			writeJSON(w, http.StatusOK, car)
		}
		return
	}

	car, err := h.source.Find(r.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "car not found")
	case err != nil:
		h.log.Printf("car lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "car lookup failed")
	default:
		writeJSON(w, http.StatusOK, car)
	}
}

// GetCarBrands defines a GET handler for /api/car-brands.
func (h *httpServer) GetCarBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Brands())
}

// GetCarTypes defines a GET handler for /api/car-types.
func (h *httpServer) GetCarTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dal.BodyTypes)
}

// validateSearchParams parses and validates every query parameter, writing
// the 400 response itself on failure.
func validateSearchParams(w http.ResponseWriter, vars url.Values) (catalog.SearchParams, error) {
	params := catalog.NewSearchParams()
	params.Query = vars.Get("query")
	params.Brands = splitSet(vars.Get("brands"))
	params.FuelTypes = splitSet(vars.Get("fuelTypes"))
	params.BodyTypes = splitSet(vars.Get("bodyTypes"))

	var err error
	if params.MinPrice, err = validatePriceBound(w, vars, "minPrice"); err != nil {
		return params, err
	}
	if params.MaxPrice, err = validatePriceBound(w, vars, "maxPrice"); err != nil {
		return params, err
	}
	if params.SeatingCapacity, err = validateSeating(w, vars); err != nil {
		return params, err
	}
	if params.Limit, err = validateLimit(w, vars); err != nil {
		return params, err
	}
	if params.Offset, err = validateOffset(w, vars); err != nil {
		return params, err
	}

	if sortBy := vars.Get("sortBy"); sortBy != "" {
		params.SortBy = sortBy
	}
	if sortOrder := vars.Get("sortOrder"); sortOrder != "" {
		params.SortOrder = sortOrder
	}
	if err := params.ValidateSort(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return params, err
	}
	return params, nil
}

func validateLimit(w http.ResponseWriter, vars url.Values) (int, error) {
	limit := vars.Get("limit")
	if limit == "" {
		return defaultLimit, nil
	}
	limitInt, err := strconv.Atoi(limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be a number")
		return 0, err
	}
	if limitInt < 1 || limitInt > maxLimit {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d: %d", maxLimit, limitInt))
		return 0, errors.New("limit out of range")
	}
	return limitInt, nil
}

func validateOffset(w http.ResponseWriter, vars url.Values) (int, error) {
	offset := vars.Get("offset")
	if offset == "" {
		return 0, nil
	}
	offsetInt, err := strconv.Atoi(offset)
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset must be a number")
		return 0, err
	}
	if offsetInt < 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("offset must not be negative: %d", offsetInt))
		return 0, errors.New("offset must not be negative")
	}
	return offsetInt, nil
}

func validatePriceBound(w http.ResponseWriter, vars url.Values, name string) (int, error) {
	bound := vars.Get(name)
	if bound == "" {
		return -1, nil
	}
	boundInt, err := strconv.Atoi(bound)
	if err != nil {
		writeError(w, http.StatusBadRequest, name+" must be a number")
		return 0, err
	}
	if boundInt < 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must not be negative: %d", name, boundInt))
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return boundInt, nil
}

func validateSeating(w http.ResponseWriter, vars url.Values) (int, error) {
	seating := vars.Get("seatingCapacity")
	if seating == "" {
		return 0, nil
	}
	seatingInt, err := strconv.Atoi(seating)
	if err != nil {
		writeError(w, http.StatusBadRequest, "seatingCapacity must be a number")
		return 0, err
	}
	if seatingInt < 1 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("seatingCapacity must be positive: %d", seatingInt))
		return 0, errors.New("seatingCapacity must be positive")
	}
	return seatingInt, nil
}

// splitSet parses a comma-joined parameter into its non-empty elements.
func splitSet(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already written; an encode failure here is unreportable.
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
