package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/catalog"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

const sqlSelectCar = `
	SELECT id, brand, model, year, price, fuel_type, transmission,
	       seating_capacity, mileage, body_type, description, image_url
	FROM cars`

// sortColumns whitelists ORDER BY targets; the sort field was validated
// against the same enumeration upstream, this is the second line.
var sortColumns = map[string]string{
	catalog.SortByPrice:   "price",
	catalog.SortByYear:    "year",
	catalog.SortByMileage: "mileage",
}

// SeedCars inserts cars, ignoring ids that are already present, so seeding
// is idempotent across restarts.
func (s *Store) SeedCars(ctx context.Context, cars []dal.Car) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO cars
		(id, brand, model, year, price, fuel_type, transmission,
		 seating_capacity, mileage, body_type, description, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing seed insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cars {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Brand, c.Model, c.Year, c.Price,
			c.FuelType, c.Transmission, c.SeatingCapacity, c.Mileage,
			c.BodyType, c.Description, c.ImageURL); err != nil {
			return fmt.Errorf("seeding car %d: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// CountCars reports the number of seeded cars.
func (s *Store) CountCars(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cars`).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// GetCar fetches one car or ErrNotFound.
func (s *Store) GetCar(ctx context.Context, id int) (*dal.Car, error) {
	row := s.db.QueryRowContext(ctx, sqlSelectCar+` WHERE id = ?`, id)
	var c dal.Car
	err := row.Scan(&c.ID, &c.Brand, &c.Model, &c.Year, &c.Price, &c.FuelType,
		&c.Transmission, &c.SeatingCapacity, &c.Mileage, &c.BodyType,
		&c.Description, &c.ImageURL)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// SearchCars mirrors the in-memory pipeline's semantics in SQL: text query
// with the zero-hit alias pass, brand/price/fuel/seating/body filters,
// whitelisted ORDER BY, LIMIT/OFFSET.
func (s *Store) SearchCars(ctx context.Context, p catalog.SearchParams) ([]dal.Car, error) {
	if err := p.ValidateSort(); err != nil {
		return nil, err
	}

	where, args := carFilterClauses(p)
	suffix, err := orderClause(p)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(p.Query))
	if q == "" {
		return s.queryCars(ctx, buildCarQuery(where, suffix), append(args, p.Limit, p.Offset)...)
	}

	like := "%" + q + "%"
	textWhere := append([]string{`(LOWER(brand) LIKE ? OR LOWER(model) LIKE ?
		OR LOWER(body_type) LIKE ? OR LOWER(fuel_type) LIKE ?
		OR CAST(year AS TEXT) LIKE ?
		OR LOWER(brand || ' ' || model) LIKE ?)`}, where...)
	textArgs := append([]any{like, like, like, like, like, like}, args...)
	cars, err := s.queryCars(ctx, buildCarQuery(textWhere, suffix), append(textArgs, p.Limit, p.Offset)...)
	if err != nil || len(cars) > 0 {
		return cars, err
	}

	// Zero hits: try the model-alias table, exact brand plus substring model.
	brand, model, ok := catalog.ResolveAlias(q)
	if !ok {
		return cars, nil
	}
	aliasWhere := append([]string{`(brand = ? AND LOWER(model) LIKE ?)`}, where...)
	aliasArgs := append([]any{brand, "%" + strings.ToLower(model) + "%"}, args...)
	return s.queryCars(ctx, buildCarQuery(aliasWhere, suffix), append(aliasArgs, p.Limit, p.Offset)...)
}

// carFilterClauses builds the non-text WHERE clauses shared by every pass.
func carFilterClauses(p catalog.SearchParams) ([]string, []any) {
	var (
		where []string
		args  []any
	)
	if len(p.Brands) > 0 {
		where = append(where, `brand IN (`+placeholders(len(p.Brands))+`)`)
		for _, b := range p.Brands {
			args = append(args, b)
		}
	}
	if p.MinPrice >= 0 {
		where = append(where, `price >= ?`)
		args = append(args, p.MinPrice)
	}
	if p.MaxPrice >= 0 {
		where = append(where, `price <= ?`)
		args = append(args, p.MaxPrice)
	}
	if len(p.FuelTypes) > 0 {
		where = append(where, `fuel_type IN (`+placeholders(len(p.FuelTypes))+`)`)
		for _, f := range p.FuelTypes {
			args = append(args, f)
		}
	}
	if p.SeatingCapacity > 0 {
		where = append(where, `seating_capacity = ?`)
		args = append(args, p.SeatingCapacity)
	}
	if len(p.BodyTypes) > 0 {
		where = append(where, `body_type IN (`+placeholders(len(p.BodyTypes))+`)`)
		for _, b := range p.BodyTypes {
			args = append(args, b)
		}
	}
	return where, args
}

// orderClause builds the ORDER BY / LIMIT / OFFSET suffix from the
// whitelisted sort column.
func orderClause(p catalog.SearchParams) (string, error) {
	column, ok := sortColumns[p.SortBy]
	if !ok {
		return "", fmt.Errorf("unknown sort field %q", p.SortBy)
	}
	direction := "ASC"
	if p.SortOrder == catalog.SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf(` ORDER BY %s %s LIMIT ? OFFSET ?`, column, direction), nil
}

func buildCarQuery(where []string, suffix string) string {
	query := sqlSelectCar
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	return query + suffix
}

func (s *Store) queryCars(ctx context.Context, query string, args ...any) ([]dal.Car, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	cars := []dal.Car{}
	for rows.Next() {
		var c dal.Car
		if err := rows.Scan(&c.ID, &c.Brand, &c.Model, &c.Year, &c.Price,
			&c.FuelType, &c.Transmission, &c.SeatingCapacity, &c.Mileage,
			&c.BodyType, &c.Description, &c.ImageURL); err != nil {
			return nil, mapError(err)
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
