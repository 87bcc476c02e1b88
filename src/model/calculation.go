package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
)

const (
	DefaultCalculationListLimit = 20
	MaxCalculationListLimit     = 200
)

const calculationColumns = `id, reference, shipment_data, products_data, charges_data,
	total_landed_origin, total_landed_dest, forex_rate, duty_total_origin, duty_total_dest,
	user_id, created_at`

// CalculationStore persists saved landed-cost calculations.
type CalculationStore struct {
	db *sql.DB
}

func NewCalculationStore(db *sql.DB) *CalculationStore {
	return &CalculationStore{db: db}
}

// Insert stores calc and fills in its ID and CreatedAt.
func (s *CalculationStore) Insert(ctx context.Context, calc *models.SavedCalculation) error {
	shipmentJSON, err := json.Marshal(calc.Shipment)
	if err != nil {
		return fmt.Errorf("encoding shipment data: %w", err)
	}
	productsJSON, err := json.Marshal(calc.Products)
	if err != nil {
		return fmt.Errorf("encoding products data: %w", err)
	}
	chargesJSON, err := json.Marshal(calc.Charges)
	if err != nil {
		return fmt.Errorf("encoding charges data: %w", err)
	}

	if calc.UserID == "" {
		calc.UserID = "anonymous"
	}
	calc.CreatedAt = time.Now().UTC().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (reference, shipment_data, products_data, charges_data,
			total_landed_origin, total_landed_dest, forex_rate, duty_total_origin, duty_total_dest,
			user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		calc.Reference, string(shipmentJSON), string(productsJSON), string(chargesJSON),
		calc.TotalLandedOrigin, calc.TotalLandedDest, calc.ForexRate, calc.DutyTotalOrigin, calc.DutyTotalDest,
		calc.UserID, calc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting calculation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading calculation id: %w", err)
	}
	calc.ID = id
	return nil
}

func scanCalculation(row rowScanner) (*models.SavedCalculation, error) {
	var c models.SavedCalculation
	var shipmentJSON, productsJSON, chargesJSON sql.NullString
	if err := row.Scan(
		&c.ID,
		&c.Reference,
		&shipmentJSON,
		&productsJSON,
		&chargesJSON,
		&c.TotalLandedOrigin,
		&c.TotalLandedDest,
		&c.ForexRate,
		&c.DutyTotalOrigin,
		&c.DutyTotalDest,
		&c.UserID,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}

	if shipmentJSON.Valid && shipmentJSON.String != "" {
		if err := json.Unmarshal([]byte(shipmentJSON.String), &c.Shipment); err != nil {
			return nil, fmt.Errorf("decoding shipment data of calculation %d: %w", c.ID, err)
		}
	}
	if productsJSON.Valid && productsJSON.String != "" {
		if err := json.Unmarshal([]byte(productsJSON.String), &c.Products); err != nil {
			return nil, fmt.Errorf("decoding products data of calculation %d: %w", c.ID, err)
		}
	}
	if chargesJSON.Valid && chargesJSON.String != "" {
		if err := json.Unmarshal([]byte(chargesJSON.String), &c.Charges); err != nil {
			return nil, fmt.Errorf("decoding charges data of calculation %d: %w", c.ID, err)
		}
	}
	if c.Products == nil {
		c.Products = []models.EnrichedProductLine{}
	}
	return &c, nil
}

// GetByID returns a saved calculation or an error wrapping models.ErrNotFound.
func (s *CalculationStore) GetByID(ctx context.Context, id int64) (*models.SavedCalculation, error) {
	c, err := scanCalculation(s.db.QueryRowContext(ctx, `SELECT `+calculationColumns+` FROM calculations WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("calculation %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("querying calculation %d: %w", id, err)
	}
	return c, nil
}

// List returns the most recent calculations first. limit is clamped to
// [1, MaxCalculationListLimit].
func (s *CalculationStore) List(ctx context.Context, limit int) ([]models.SavedCalculation, error) {
	if limit <= 0 {
		limit = DefaultCalculationListLimit
	}
	if limit > MaxCalculationListLimit {
		limit = MaxCalculationListLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+calculationColumns+` FROM calculations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing calculations: %w", err)
	}
	defer rows.Close()

	calcs := []models.SavedCalculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, *c)
	}
	return calcs, rows.Err()
}
