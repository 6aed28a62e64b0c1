package store

// Address is one row of the order address table.
type Address struct {
	Firstname string
	Lastname  string
	Company   string
	Street    string
	City      string
	Region    string
	Postcode  string
	CountryID string
	Telephone string
}

// OrderRow is one matched sales order as read from the store. Fields maps
// selected column codes to their raw string values; missing columns are
// simply absent.
type OrderRow struct {
	EntityID  int64
	CreatedAt string
	Currency  string
	Fields    map[string]string

	BillingAddress  *Address
	ShippingAddress *Address
}

// Field returns the raw value for a column code, empty when absent.
func (r OrderRow) Field(code string) string {
	return r.Fields[code]
}
