package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/commerce-tools/order-export/pkg/models/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Filter narrows the order query. Zero-value members are ignored.
type Filter struct {
	OrderIDs       []int64
	GrandTotalOver *decimal.Decimal // strictly greater than
	From, To       *time.Time
	FieldCodes     []string
}

// OrderStore reads matching sales orders with an arbitrary selected column
// set, ordered by entity id descending.
type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) (*OrderStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &OrderStore{db: db}, nil
}

// baseColumns are always fetched regardless of the field selection.
var baseColumns = []string{"entity_id", "created_at", "order_currency_code"}

// timestampColumns must be scanned as timestamps, everything else scans as text.
var timestampColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
}

var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Query returns matching orders newest-id first. Selected codes that do not
// look like column identifiers are silently skipped; their cells will render
// empty downstream.
func (s *OrderStore) Query(ctx context.Context, f Filter) ([]store.OrderRow, error) {
	logger := zerolog.Ctx(ctx)

	columns := append([]string{}, baseColumns...)
	seen := map[string]bool{}
	for _, c := range baseColumns {
		seen[c] = true
	}
	wantAddresses := false
	for _, code := range f.FieldCodes {
		if code == "billing_address_id" || code == "shipping_address_id" {
			wantAddresses = true
		}
		if seen[code] || !identPattern.MatchString(code) {
			continue
		}
		seen[code] = true
		columns = append(columns, code)
	}

	var (
		conds []string
		args  []any
	)
	if len(f.OrderIDs) > 0 {
		placeholders := make([]string, len(f.OrderIDs))
		for i, id := range f.OrderIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, fmt.Sprintf("entity_id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if f.GrandTotalOver != nil {
		args = append(args, f.GrandTotalOver.String())
		conds = append(conds, fmt.Sprintf("grand_total > $%d", len(args)))
	}
	if f.From != nil && f.To != nil {
		args = append(args, *f.From, *f.To)
		conds = append(conds, fmt.Sprintf("created_at BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM sales_order", strings.Join(columns, ", "))
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY entity_id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("order query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close order query rows")
		}
	}(rows)

	var orders []store.OrderRow
	for rows.Next() {
		row, err := scanOrder(columns, rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order query iteration failed: %w", err)
	}

	if wantAddresses {
		for i := range orders {
			s.attachAddresses(ctx, &orders[i])
		}
	}
	return orders, nil
}

func scanOrder(columns []string, rows *sql.Rows) (store.OrderRow, error) {
	targets := make([]any, len(columns))
	strVals := make([]sql.NullString, len(columns))
	timeVals := make([]sql.NullTime, len(columns))
	for i, col := range columns {
		if timestampColumns[col] {
			targets[i] = &timeVals[i]
		} else {
			targets[i] = &strVals[i]
		}
	}

	if err := rows.Scan(targets...); err != nil {
		return store.OrderRow{}, fmt.Errorf("failed to scan order row: %w", err)
	}

	row := store.OrderRow{Fields: make(map[string]string, len(columns))}
	for i, col := range columns {
		var val string
		if timestampColumns[col] {
			if timeVals[i].Valid {
				val = timeVals[i].Time.Format("2006-01-02 15:04:05")
			}
		} else if strVals[i].Valid {
			val = strVals[i].String
		}

		switch col {
		case "entity_id":
			row.EntityID, _ = strconv.ParseInt(val, 10, 64)
		case "created_at":
			row.CreatedAt = val
		case "order_currency_code":
			row.Currency = val
		}
		row.Fields[col] = val
	}
	return row, nil
}

// attachAddresses loads the billing/shipping addresses referenced by the
// order row. Lookup failures degrade to a missing address, never an error.
func (s *OrderStore) attachAddresses(ctx context.Context, row *store.OrderRow) {
	if id := row.Field("billing_address_id"); id != "" {
		row.BillingAddress = s.loadAddress(ctx, id)
	}
	if id := row.Field("shipping_address_id"); id != "" {
		row.ShippingAddress = s.loadAddress(ctx, id)
	}
}

const addressQuery = `
	SELECT firstname, lastname, company, street, city, region, postcode, country_id, telephone
	FROM sales_order_address
	WHERE entity_id = $1
`

func (s *OrderStore) loadAddress(ctx context.Context, addressID string) *store.Address {
	logger := zerolog.Ctx(ctx)

	var (
		addr store.Address
		vals [9]sql.NullString
	)
	err := s.db.QueryRowContext(ctx, addressQuery, addressID).Scan(
		&vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5], &vals[6], &vals[7], &vals[8],
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Warn().Err(err).Str("address_id", addressID).Msg("address lookup failed")
		}
		return nil
	}

	addr.Firstname = vals[0].String
	addr.Lastname = vals[1].String
	addr.Company = vals[2].String
	addr.Street = vals[3].String
	addr.City = vals[4].String
	addr.Region = vals[5].String
	addr.Postcode = vals[6].String
	addr.CountryID = vals[7].String
	addr.Telephone = vals[8].String
	return &addr
}
