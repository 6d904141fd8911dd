package catalog

import (
	"sort"
	"strings"
)

// popularBrands is used by the fallback generator when the caller does not
// request specific brands.
var popularBrands = []string{"Toyota", "Honda", "Ford", "BMW", "Hyundai", "Nissan"}

// brandModels is the static catalog backing the fallback generator.
// Brands absent from this table yield no fallback entries.
var brandModels = map[string][]string{
	"Toyota":        {"Corolla", "Camry", "RAV4", "Fortuner", "Innova"},
	"Honda":         {"Civic", "Accord", "CR-V", "City"},
	"Ford":          {"Mustang", "F-150", "Explorer", "EcoSport"},
	"BMW":           {"3 Series", "5 Series", "X3", "X5"},
	"Mercedes-Benz": {"C-Class", "E-Class", "GLC"},
	"Audi":          {"A4", "A6", "Q5"},
	"Hyundai":       {"i20", "Elantra", "Creta", "Tucson"},
	"Kia":           {"Seltos", "Sportage", "Sorento"},
	"Nissan":        {"GT-R", "Altima", "Rogue"},
	"Suzuki":        {"Swift", "Baleno", "Vitara"},
	"Volkswagen":    {"Golf", "Passat", "Tiguan"},
	"Tesla":         {"Model 3", "Model S", "Model Y"},
}

// brandImages maps a brand to a stock image URL.
var brandImages = map[string]string{
	"Toyota":        "https://images.carsearch.example/brands/toyota.jpg",
	"Honda":         "https://images.carsearch.example/brands/honda.jpg",
	"Ford":          "https://images.carsearch.example/brands/ford.jpg",
	"BMW":           "https://images.carsearch.example/brands/bmw.jpg",
	"Mercedes-Benz": "https://images.carsearch.example/brands/mercedes-benz.jpg",
	"Audi":          "https://images.carsearch.example/brands/audi.jpg",
	"Hyundai":       "https://images.carsearch.example/brands/hyundai.jpg",
	"Kia":           "https://images.carsearch.example/brands/kia.jpg",
	"Nissan":        "https://images.carsearch.example/brands/nissan.jpg",
	"Suzuki":        "https://images.carsearch.example/brands/suzuki.jpg",
	"Volkswagen":    "https://images.carsearch.example/brands/volkswagen.jpg",
	"Tesla":         "https://images.carsearch.example/brands/tesla.jpg",
}

// placeholderImageURL is used when a brand has no entry in brandImages.
const placeholderImageURL = "https://images.carsearch.example/brands/generic.jpg"

type modelAlias struct {
	Brand string
	Model string
}

// queryAliases resolves well-known model nicknames that the substring pass
// cannot match, e.g. "gtr" never appears inside "GT-R".
var queryAliases = map[string]modelAlias{
	"gtr":     {Brand: "Nissan", Model: "GT-R"},
	"mustang": {Brand: "Ford", Model: "Mustang"},
	"swift":   {Brand: "Suzuki", Model: "Swift"},
	"civic":   {Brand: "Honda", Model: "Civic"},
	"corolla": {Brand: "Toyota", Model: "Corolla"},
	"golf":    {Brand: "Volkswagen", Model: "Golf"},
}

// ResolveAlias resolves a query nickname to its brand and model. Both
// search paths use it for the zero-hit secondary pass.
func ResolveAlias(query string) (brand, model string, ok bool) {
	alias, ok := queryAliases[strings.ToLower(strings.TrimSpace(query))]
	return alias.Brand, alias.Model, ok
}

// Brands returns every brand known to the static catalog, sorted.
func Brands() []string {
	out := make([]string, 0, len(brandModels))
	for brand := range brandModels {
		out = append(out, brand)
	}
	sort.Strings(out)
	return out
}
