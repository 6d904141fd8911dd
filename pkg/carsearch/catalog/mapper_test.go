package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

func TestMapRecordDeterministic(t *testing.T) {
	rec := dal.CatalogRecord{Make: "Ford", Model: "Mustang", Year: 2024, Type: "Coupe"}
	first := MapRecord(rec)
	second := MapRecord(rec)
	assert.Equal(t, first, second, "mapping the same logical car twice must be stable")
}

func TestMapRecordStableID(t *testing.T) {
	a := MapRecord(dal.CatalogRecord{Make: "Ford", Model: "Mustang", Year: 2024})
	b := MapRecord(dal.CatalogRecord{Make: "Ford", Model: "Mustang", Year: 2024, Type: "Coupe"})
	assert.Equal(t, a.ID, b.ID, "id depends only on brand, model and year")
	assert.Positive(t, a.ID)
	assert.Equal(t, CarID("Ford", "Mustang", 2024), a.ID)

	c := MapRecord(dal.CatalogRecord{Make: "Ford", Model: "Mustang", Year: 2023})
	assert.NotEqual(t, a.ID, c.ID)
}

func TestMapRecordPriceFormula(t *testing.T) {
	car := MapRecord(dal.CatalogRecord{Make: "Toyota", Model: "Camry", Year: 2023})
	base := 10000 + (2023-2000)*1000
	assert.GreaterOrEqual(t, car.Price, base)
	assert.Less(t, car.Price, base+5000)
}

func TestMapRecordEnums(t *testing.T) {
	car := MapRecord(dal.CatalogRecord{Make: "Kia", Model: "Seltos", Year: 2025, Type: "SUV"})
	assert.Contains(t, dal.FuelTypes, car.FuelType)
	assert.Contains(t, []string{dal.TransmissionAutomatic, dal.TransmissionManual}, car.Transmission)
	assert.GreaterOrEqual(t, car.Mileage, 0)
	assert.Less(t, car.Mileage, 100000)
	assert.NotEmpty(t, car.Description)
}

func TestSeatingFor(t *testing.T) {
	tests := []struct {
		bodyType string
		expected int
	}{
		{"SUV", 7},
		{"Compact SUV", 7},
		{"Coupe", 2},
		{"Convertible", 2},
		{"Sedan", 5},
		{"", 5},
		{"Hatchback", 5},
	}
	for _, tc := range tests {
		t.Run(tc.bodyType, func(t *testing.T) {
			assert.Equal(t, tc.expected, seatingFor(tc.bodyType))
		})
	}
}

func TestImageLookup(t *testing.T) {
	known := MapRecord(dal.CatalogRecord{Make: "Toyota", Model: "RAV4", Year: 2025})
	require.NotEmpty(t, known.ImageURL)
	assert.Equal(t, brandImages["Toyota"], known.ImageURL)

	unknown := MapRecord(dal.CatalogRecord{Make: "Zonda", Model: "F", Year: 2025})
	assert.Equal(t, placeholderImageURL, unknown.ImageURL)
}
