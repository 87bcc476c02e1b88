package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
)

const productColumns = `id, section, chapter, main_category, subcategory, group_name, hts_code,
	product, unit_of_quantity, general_rate_of_duty, special_rate_of_duty, column2_rate_of_duty, last_updated`

const (
	DefaultProductListLimit = 50
	MaxProductListLimit     = 500
)

// ProductStore reads the HTS product table.
type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var section, mainCategory, subCategory, groupName, htsCode, name, unit sql.NullString
	var general, special, column2 sql.NullString
	var chapter sql.NullInt64
	var lastUpdated sql.NullTime
	if err := row.Scan(
		&p.ID,
		&section,
		&chapter,
		&mainCategory,
		&subCategory,
		&groupName,
		&htsCode,
		&name,
		&unit,
		&general,
		&special,
		&column2,
		&lastUpdated,
	); err != nil {
		return nil, err
	}
	p.Section = section.String
	p.Chapter = int(chapter.Int64)
	p.MainCategory = mainCategory.String
	p.SubCategory = subCategory.String
	p.GroupName = groupName.String
	p.HTSCode = htsCode.String
	p.Name = name.String
	p.UnitOfQuantity = unit.String
	p.GeneralRateOfDuty = general.String
	p.SpecialRateOfDuty = special.String
	p.Column2RateOfDuty = column2.String
	if lastUpdated.Valid {
		t := lastUpdated.Time
		p.LastUpdated = &t
	}
	return &p, nil
}

// GetProductsByIDs fetches several products in one query. Ids without a row
// are simply absent from the returned map.
func (s *ProductStore) GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	products := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	query := `SELECT ` + productColumns + ` FROM product_table WHERE id IN (?` + strings.Repeat(",?", len(ids)-1) + `)`
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products[p.ID] = *p
	}
	return products, rows.Err()
}

// GetProductByID returns a single product or an error wrapping models.ErrNotFound.
func (s *ProductStore) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product_table WHERE id = ?`
	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("querying product %d: %w", id, err)
	}
	return p, nil
}

// ListProducts returns products whose name or HTS code contains search,
// ordered by HTS code. limit is clamped to [1, MaxProductListLimit].
func (s *ProductStore) ListProducts(ctx context.Context, search string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultProductListLimit
	}
	if limit > MaxProductListLimit {
		limit = MaxProductListLimit
	}

	query := `SELECT ` + productColumns + ` FROM product_table`
	var args []interface{}
	if q := strings.TrimSpace(search); q != "" {
		query += ` WHERE product LIKE ? COLLATE NOCASE OR hts_code LIKE ?`
		args = append(args, "%"+q+"%", q+"%")
	}
	query += ` ORDER BY hts_code ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
