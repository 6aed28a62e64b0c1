package domain

// FormatKind selects the formatting rule applied to a field's raw value.
type FormatKind int

const (
	KindRawString FormatKind = iota
	KindIdentity
	KindDateOnly
	KindStatusTitleCase
	KindFullName
	KindCustomerGroupName
	KindCurrency
	KindAddress
)

func (k FormatKind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindDateOnly:
		return "date"
	case KindStatusTitleCase:
		return "status"
	case KindFullName:
		return "full_name"
	case KindCustomerGroupName:
		return "customer_group"
	case KindCurrency:
		return "currency"
	case KindAddress:
		return "address"
	default:
		return "raw"
	}
}

// FieldSpec describes one exportable order attribute. Identity is the Code.
type FieldSpec struct {
	Code  string
	Label string
	Kind  FormatKind
	// Hidden fields are fetched for formatting purposes only and are never
	// rendered as their own column.
	Hidden bool
}

// SelectedField is one entry of the configured field selection.
type SelectedField struct {
	Code  string `mapstructure:"code" json:"order_code"`
	Label string `mapstructure:"label" json:"order_title"`
}
