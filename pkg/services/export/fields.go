package export

import (
	"strings"

	"github.com/commerce-tools/order-export/pkg/models/domain"
)

// Catalog maps known order field codes to their formatting kind. Codes not
// listed here pass through with raw-string formatting; the resolver never
// validates against the store schema.
var Catalog = map[string]domain.FormatKind{
	"entity_id":           domain.KindIdentity,
	"increment_id":        domain.KindIdentity,
	"status":              domain.KindStatusTitleCase,
	"created_at":          domain.KindDateOnly,
	"updated_at":          domain.KindDateOnly,
	"customer_firstname":  domain.KindFullName,
	"customer_group_id":   domain.KindCustomerGroupName,
	"billing_address_id":  domain.KindAddress,
	"shipping_address_id": domain.KindAddress,
	"shipping_amount":     domain.KindCurrency,
	"shipping_incl_tax":   domain.KindCurrency,
	"shipping_tax_amount": domain.KindCurrency,
	"subtotal":            domain.KindCurrency,
	"discount_amount":     domain.KindCurrency,
	"grand_total":         domain.KindCurrency,
	"base_grand_total":    domain.KindCurrency,
	"tax_amount":          domain.KindCurrency,
	"total_due":           domain.KindCurrency,
}

// fieldLastname is fetched alongside customer_firstname so the full customer
// name can be composed. It never becomes a column of its own.
const (
	fieldFirstname = "customer_firstname"
	fieldLastname  = "customer_lastname"
)

// DefaultFields is the export field list used when no selection is configured.
var DefaultFields = []domain.SelectedField{
	{Code: "increment_id", Label: "Increment ID"},
	{Code: "status", Label: "Order Status"},
	{Code: "billing_address_id", Label: "Billing Address"},
	{Code: "shipping_address_id", Label: "Shipping Address"},
	{Code: "created_at", Label: "Order Date"},
	{Code: "customer_firstname", Label: "Customer Name"},
	{Code: "customer_email", Label: "Customer Email"},
	{Code: "shipping_method", Label: "Shipping Method"},
	{Code: "total_qty_ordered", Label: "Total Qty Ordered"},
	{Code: "shipping_amount", Label: "Shipping Amount"},
	{Code: "grand_total", Label: "Grand Total"},
}

// ResolveFields returns the effective ordered field list: the configured
// selection when non-empty, otherwise DefaultFields. Labels fall back to a
// title-cased variant of the code. When customer_firstname is selected
// without customer_lastname, a hidden lastname field is appended so the
// composite name can be formatted.
func ResolveFields(configured []domain.SelectedField) []domain.FieldSpec {
	selection := configured
	if len(selection) == 0 {
		selection = DefaultFields
	}

	fields := make([]domain.FieldSpec, 0, len(selection)+1)
	hasFirst, hasLast := false, false
	for _, sf := range selection {
		label := sf.Label
		if label == "" {
			label = titleCase(sf.Code)
		}
		fields = append(fields, domain.FieldSpec{
			Code:  sf.Code,
			Label: label,
			Kind:  Catalog[sf.Code],
		})
		switch sf.Code {
		case fieldFirstname:
			hasFirst = true
		case fieldLastname:
			hasLast = true
		}
	}

	if hasFirst && !hasLast {
		fields = append(fields, domain.FieldSpec{
			Code:   fieldLastname,
			Label:  titleCase(fieldLastname),
			Hidden: true,
		})
	}

	return fields
}

// Visible filters out hidden formatting-only fields.
func Visible(fields []domain.FieldSpec) []domain.FieldSpec {
	out := make([]domain.FieldSpec, 0, len(fields))
	for _, f := range fields {
		if !f.Hidden {
			out = append(out, f)
		}
	}
	return out
}

// Headers returns the column labels for the visible fields.
func Headers(fields []domain.FieldSpec) []string {
	visible := Visible(fields)
	headers := make([]string, len(visible))
	for i, f := range visible {
		headers[i] = f.Label
	}
	return headers
}

// Codes returns all field codes, hidden ones included, preserving order.
func Codes(fields []domain.FieldSpec) []string {
	codes := make([]string, len(fields))
	for i, f := range fields {
		codes[i] = f.Code
	}
	return codes
}

// titleCase turns "customer_email" into "Customer Email".
func titleCase(code string) string {
	parts := strings.Split(code, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
