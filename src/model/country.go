package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
)

const countryColumns = `id, country_name, iso_code, currency, region, status,
	eligibility_criteria, tariff_data_status, created_at, updated_at`

// CountryStore reads the countries reference table.
type CountryStore struct {
	db *sql.DB
}

func NewCountryStore(db *sql.DB) *CountryStore {
	return &CountryStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCountry(row rowScanner) (*models.Country, error) {
	var c models.Country
	var eligibility sql.NullString
	if err := row.Scan(
		&c.ID,
		&c.CountryName,
		&c.ISOCode,
		&c.Currency,
		&c.Region,
		&c.Status,
		&eligibility,
		&c.TariffDataStatus,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.EligibilityCriteria = eligibility.String
	return &c, nil
}

// GetCountryByName looks a country up by name, ignoring case and surrounding
// whitespace. It returns an error wrapping models.ErrNotFound when no row matches.
func (s *CountryStore) GetCountryByName(ctx context.Context, name string) (*models.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE country_name = ? COLLATE NOCASE LIMIT 1`
	c, err := scanCountry(s.db.QueryRowContext(ctx, query, strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("country %q: %w", name, models.ErrNotFound)
		}
		return nil, fmt.Errorf("querying country %q: %w", name, err)
	}
	return c, nil
}

// GetCountryByID returns the country with the given primary key.
func (s *CountryStore) GetCountryByID(ctx context.Context, id int64) (*models.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE id = ?`
	c, err := scanCountry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("country %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("querying country %d: %w", id, err)
	}
	return c, nil
}

// ListCountries returns countries ordered by name. A non-empty nameFilter
// keeps only names containing it.
func (s *CountryStore) ListCountries(ctx context.Context, nameFilter string) ([]models.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries`
	var args []interface{}
	if f := strings.TrimSpace(nameFilter); f != "" {
		query += ` WHERE country_name LIKE ? COLLATE NOCASE`
		args = append(args, "%"+f+"%")
	}
	query += ` ORDER BY country_name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing countries: %w", err)
	}
	defer rows.Close()

	countries := []models.Country{}
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning country: %w", err)
		}
		countries = append(countries, *c)
	}
	return countries, rows.Err()
}
