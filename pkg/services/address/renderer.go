package address

import (
	"strings"

	"github.com/commerce-tools/order-export/pkg/models/store"
)

// Renderer flattens an order address into a single comma-separated line. Any
// markup the address parts carry is stripped before joining.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns empty for a missing address.
func (r *Renderer) Render(addr *store.Address) string {
	if addr == nil {
		return ""
	}

	name := strings.TrimSpace(addr.Firstname + " " + addr.Lastname)
	parts := []string{
		name,
		addr.Company,
		addr.Street,
		addr.City,
		strings.TrimSpace(addr.Region + " " + addr.Postcode),
		addr.CountryID,
		addr.Telephone,
	}

	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(stripTags(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// stripTags removes angle-bracket markup, keeping text content only.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
