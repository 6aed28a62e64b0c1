package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter("USD")
	amount := decimal.RequireFromString("150.5")

	t.Run("known currency uses its symbol", func(t *testing.T) {
		assert.Equal(t, "$150.50", f.Format(amount, "USD"))
		assert.Equal(t, "€150.50", f.Format(amount, "EUR"))
	})

	t.Run("unknown currency falls back to code prefix", func(t *testing.T) {
		assert.Equal(t, "SEK 150.50", f.Format(amount, "SEK"))
	})

	t.Run("empty code uses the default currency", func(t *testing.T) {
		assert.Equal(t, "$150.50", f.Format(amount, ""))
	})
}
