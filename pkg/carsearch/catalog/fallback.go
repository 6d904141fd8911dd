package catalog

import (
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

// Generate synthesizes catalog records from the static brand tables. It is
// used whenever the upstream catalog is unavailable.
//
// When brands are requested, exactly those brands are used; otherwise the
// popular-brands list. Each known model yields one record for currentYear
// and the two preceding years. If a body type was requested, the first one
// is assigned to every record; otherwise body type alternates Sedan/SUV by
// year index.
//
// The output is deterministic given (brands, bodyTypes, currentYear).
func Generate(brands, bodyTypes []string, currentYear int) []dal.CatalogRecord {
	selected := brands
	if len(selected) == 0 {
		selected = popularBrands
	}

	requestedBody := ""
	if len(bodyTypes) > 0 {
		requestedBody = bodyTypes[0]
	}

	var records []dal.CatalogRecord
	for _, brand := range selected {
		models := brandModels[brand]
		for _, model := range models {
			for yi := 0; yi < 3; yi++ {
				body := requestedBody
				if body == "" {
					if yi%2 == 0 {
						body = "Sedan"
					} else {
						body = "SUV"
					}
				}
				records = append(records, dal.CatalogRecord{
					Make:  brand,
					Model: model,
					Year:  currentYear - yi,
					Type:  body,
				})
			}
		}
	}
	return records
}
