package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMonthYear(t *testing.T) {
	t.Run("named billing period", func(t *testing.T) {
		my, ok := detectMonthYear("Billing period: Jul 14, 2025 to Aug 05, 2025")
		require.True(t, ok)
		assert.Equal(t, 7, my.Month)
		assert.Equal(t, 2025, my.Year)
	})

	t.Run("named date range without prefix", func(t *testing.T) {
		my, ok := detectMonthYear("Service dates September 3, 2024 to October 2, 2024")
		require.True(t, ok)
		assert.Equal(t, 9, my.Month)
		assert.Equal(t, 2024, my.Year)
	})

	t.Run("numeric billing period", func(t *testing.T) {
		my, ok := detectMonthYear("Billing period 08-14-2025 to 09-13-2025")
		require.True(t, ok)
		assert.Equal(t, 8, my.Month)
		assert.Equal(t, 2025, my.Year)
	})

	t.Run("month name and year", func(t *testing.T) {
		my, ok := detectMonthYear("Statement for October 2025")
		require.True(t, ok)
		assert.Equal(t, 10, my.Month)
		assert.Equal(t, 2025, my.Year)
	})

	t.Run("numeric month and year", func(t *testing.T) {
		my, ok := detectMonthYear("Cycle 03/2025")
		require.True(t, ok)
		assert.Equal(t, 3, my.Month)
		assert.Equal(t, 2025, my.Year)
	})

	t.Run("billing period beats incidental dates", func(t *testing.T) {
		text := "Printed March 2024\nBilling period: Jan 05, 2024 to Feb 04, 2024"
		my, ok := detectMonthYear(text)
		require.True(t, ok)
		assert.Equal(t, 1, my.Month)
		assert.Equal(t, 2024, my.Year)
	})

	t.Run("no date", func(t *testing.T) {
		_, ok := detectMonthYear("Pay immediately\nTotal Due $50.00")
		assert.False(t, ok)
	})
}
