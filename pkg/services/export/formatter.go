package export

import (
	"context"
	"strings"
	"time"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/commerce-tools/order-export/pkg/models/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CurrencyFormatter renders a monetary amount with the store's currency symbol.
type CurrencyFormatter interface {
	Format(amount decimal.Decimal, currencyCode string) string
}

// AddressRenderer flattens an order address into a single line of plain text.
type AddressRenderer interface {
	Render(addr *store.Address) string
}

// GroupNameResolver resolves a customer group id to its group code.
type GroupNameResolver interface {
	GroupName(ctx context.Context, groupID int64) (string, error)
}

// ValueFormatter turns raw order field values into display strings,
// dispatching on the field's FormatKind.
type ValueFormatter struct {
	currency CurrencyFormatter
	address  AddressRenderer
	groups   GroupNameResolver
}

func NewValueFormatter(
	currency CurrencyFormatter,
	address AddressRenderer,
	groups GroupNameResolver,
) *ValueFormatter {
	return &ValueFormatter{
		currency: currency,
		address:  address,
		groups:   groups,
	}
}

// timestamp layouts accepted for stored order dates, tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseTimestamp parses a raw stored timestamp. Unparsable input is treated
// as absent rather than an error.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Format renders the display value of one field for one order row.
func (f *ValueFormatter) Format(ctx context.Context, spec domain.FieldSpec, row store.OrderRow) string {
	raw := row.Field(spec.Code)

	switch spec.Kind {
	case domain.KindStatusTitleCase:
		if raw == "" {
			return ""
		}
		return strings.ToUpper(raw[:1]) + raw[1:]

	case domain.KindDateOnly:
		ts, ok := ParseTimestamp(raw)
		if !ok {
			return ""
		}
		return ts.Format("02-01-2006")

	case domain.KindFullName:
		first := row.Field(fieldFirstname)
		last := row.Field(fieldLastname)
		return strings.TrimSpace(first + " " + last)

	case domain.KindCustomerGroupName:
		id, err := decimal.NewFromString(raw)
		if err != nil {
			return raw
		}
		name, err := f.groups.GroupName(ctx, id.IntPart())
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("group_id", raw).
				Msg("customer group lookup failed, falling back to raw id")
			return raw
		}
		return name

	case domain.KindCurrency:
		amount, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return raw
		}
		return f.currency.Format(amount, row.Currency)

	case domain.KindAddress:
		addr := row.BillingAddress
		if spec.Code == "shipping_address_id" {
			addr = row.ShippingAddress
		}
		return f.address.Render(addr)

	default:
		// Identity and RawString both pass the raw value through; missing
		// values already read as empty string.
		return raw
	}
}

// FormatRow renders the visible cells of one order row in field order.
func (f *ValueFormatter) FormatRow(ctx context.Context, fields []domain.FieldSpec, row store.OrderRow) []string {
	cells := make([]string, 0, len(fields))
	for _, spec := range fields {
		if spec.Hidden {
			continue
		}
		cells = append(cells, f.Format(ctx, spec, row))
	}
	return cells
}
