package catalog

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

// carSeed hashes the identity of a logical car. The same (make, model, year)
// always hashes to the same value, which gives us both a stable id and a
// stable pseudo-random stream for the synthesized fields.
func carSeed(makeName, model string, year int) uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s|%d", makeName, model, year)
	return h.Sum32()
}

// CarID returns the stable identifier for a logical car.
func CarID(makeName, model string, year int) int {
	id := int(carSeed(makeName, model, year) & 0x7fffffff)
	if id == 0 {
		id = 1
	}
	return id
}

// MapRecord converts a raw catalog record into a full car record.
//
// Price, fuel type, transmission and mileage are drawn from a PRNG seeded by
// the car's identity, so mapping the same logical car twice yields the same
// record.
func MapRecord(rec dal.CatalogRecord) dal.Car {
	seed := carSeed(rec.Make, rec.Model, rec.Year)
	rng := rand.New(rand.NewSource(int64(seed)))

	price := 10000 + (rec.Year-2000)*1000 + rng.Intn(5000)
	if price < 0 {
		price = 0
	}
	fuel := dal.FuelTypes[rng.Intn(len(dal.FuelTypes))]
	transmission := dal.TransmissionAutomatic
	if rng.Intn(2) == 1 {
		transmission = dal.TransmissionManual
	}
	mileage := rng.Intn(100000)

	car := dal.Car{
		ID:              int(seed & 0x7fffffff),
		Brand:           rec.Make,
		Model:           rec.Model,
		Year:            rec.Year,
		Price:           price,
		FuelType:        fuel,
		Transmission:    transmission,
		SeatingCapacity: seatingFor(rec.Type),
		Mileage:         mileage,
		BodyType:        rec.Type,
		ImageURL:        imageFor(rec.Make),
	}
	if car.ID == 0 {
		car.ID = 1
	}
	car.Description = fmt.Sprintf("%d %s %s %s with %s engine and %s transmission",
		car.Year, car.Brand, car.Model, car.BodyType, car.FuelType, car.Transmission)
	return car
}

// MapRecords maps a whole batch.
func MapRecords(recs []dal.CatalogRecord) []dal.Car {
	cars := make([]dal.Car, 0, len(recs))
	for _, rec := range recs {
		cars = append(cars, MapRecord(rec))
	}
	return cars
}

func seatingFor(bodyType string) int {
	t := strings.ToLower(bodyType)
	switch {
	case strings.Contains(t, "suv"):
		return 7
	case strings.Contains(t, "coupe"), strings.Contains(t, "convertible"):
		return 2
	default:
		return 5
	}
}

func imageFor(brand string) string {
	if url, ok := brandImages[brand]; ok {
		return url
	}
	return placeholderImageURL
}
