package dal

// Fuel types recognised by the catalog.
const (
	FuelPetrol   = "Petrol"
	FuelDiesel   = "Diesel"
	FuelElectric = "Electric"
	FuelHybrid   = "Hybrid"
)

// FuelTypes lists every valid fuel type.
var FuelTypes = []string{FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid}

// Transmissions recognised by the catalog.
const (
	TransmissionAutomatic = "Automatic"
	TransmissionManual    = "Manual"
)

// BodyTypes lists the body styles the catalog knows about.
var BodyTypes = []string{"Sedan", "SUV", "Hatchback", "Coupe", "Convertible", "Wagon", "Pickup"}

// Car defines a fully mapped catalog car.
//
// ID is derived from brand, model and year, so the same logical car keeps
// the same id across requests.
type Car struct {
	ID              int    `json:"id"`
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	Year            int    `json:"year"`
	Price           int    `json:"price"`
	FuelType        string `json:"fuelType"`
	Transmission    string `json:"transmission"`
	SeatingCapacity int    `json:"seatingCapacity"`
	Mileage         int    `json:"mileage"`
	BodyType        string `json:"bodyType,omitempty"`
	Description     string `json:"description,omitempty"`
	ImageURL        string `json:"imageUrl"`
}

// CatalogRecord is a raw record as returned by the upstream catalog or the
// fallback generator, before mapping.
type CatalogRecord struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Type  string `json:"type,omitempty"`
}
