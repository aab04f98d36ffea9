package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amountEq(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestDetectAmount(t *testing.T) {
	t.Run("keyword window wins over larger numbers elsewhere", func(t *testing.T) {
		text := "Account: 555-1234\nTotal Amount Due\n$89.10 due by 10/01/2025\nLifetime usage value $9,999.99"
		amt, ok := detectAmount(text)
		require.True(t, ok)
		amountEq(t, "89.10", amt)
	})

	t.Run("largest candidate in window", func(t *testing.T) {
		text := "Amount Due Now $120.45 includes past due $35.00"
		amt, ok := detectAmount(text)
		require.True(t, ok)
		amountEq(t, "120.45", amt)
	})

	t.Run("fallback to largest currency-like number", func(t *testing.T) {
		text := "Usage 12.50\nFee 3.75"
		amt, ok := detectAmount(text)
		require.True(t, ok)
		amountEq(t, "12.50", amt)
	})

	t.Run("thousands separators preserved", func(t *testing.T) {
		text := "Total Due $1,234.56"
		amt, ok := detectAmount(text)
		require.True(t, ok)
		amountEq(t, "1234.56", amt)
	})

	t.Run("phone-number context rejected", func(t *testing.T) {
		_, ok := detectAmount("Support: 1-800-555-01.99")
		assert.False(t, ok)
	})

	t.Run("implausibly large amounts rejected", func(t *testing.T) {
		_, ok := detectAmount("Reference 123456.78 9,999,999.00")
		assert.False(t, ok)
	})

	t.Run("no amount", func(t *testing.T) {
		amt, ok := detectAmount("Thank you for your business")
		assert.False(t, ok)
		assert.True(t, amt.IsZero())
	})
}
