package extract

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor() *Extractor {
	return New(DefaultRegistry(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExtractor_Extract(t *testing.T) {
	t.Run("unknown issuer with date and amount", func(t *testing.T) {
		text := "Awesome Energy\nService address: 12 Main St\n03/2025\nTotal Due $120.45\n"
		rec := newTestExtractor().Extract(text)

		assert.Equal(t, "Awesome Energy", rec.Issuer.Value)
		assert.True(t, rec.Issuer.Defaulted, "first-line fallback is flagged for review")
		assert.Equal(t, 3, rec.Month.Value)
		assert.Equal(t, 2025, rec.Year.Value)
		assert.False(t, rec.Month.Defaulted)
		assert.False(t, rec.Year.Defaulted)
		require.False(t, rec.Amount.Defaulted)
		assert.True(t, rec.Amount.Value.Equal(decimal.RequireFromString("120.45")))
		assert.Equal(t, []string{"issuer"}, rec.DefaultedFields())
	})

	t.Run("known issuer fully extracted", func(t *testing.T) {
		text := "National Grid\nBilling period: Jul 14, 2025 to Aug 05, 2025\nTotal Amount Due $231.17\n"
		rec := newTestExtractor().Extract(text)

		assert.Equal(t, "National Grid", rec.Issuer.Value)
		assert.Equal(t, 7, rec.Month.Value)
		assert.Equal(t, 2025, rec.Year.Value)
		assert.True(t, rec.Amount.Value.Equal(decimal.RequireFromString("231.17")))
		assert.True(t, rec.Complete())
	})

	t.Run("no recognizable date falls back to defaults", func(t *testing.T) {
		text := "Awesome Energy\nPay immediately\nTotal Due $50.00\n"
		rec := newTestExtractor().Extract(text)

		assert.Equal(t, 1, rec.Month.Value)
		assert.Equal(t, 1970, rec.Year.Value)
		assert.True(t, rec.Month.Defaulted)
		assert.True(t, rec.Year.Defaulted)
	})

	t.Run("empty text degrades everything", func(t *testing.T) {
		rec := newTestExtractor().Extract("")

		assert.Equal(t, "Unknown", rec.Issuer.Value)
		assert.Equal(t, 1, rec.Month.Value)
		assert.Equal(t, 1970, rec.Year.Value)
		assert.True(t, rec.Amount.Value.IsZero())
		assert.Equal(t, []string{"issuer", "month", "year", "amount"}, rec.DefaultedFields())
	})

	t.Run("long first line is collapsed and clipped", func(t *testing.T) {
		text := "The   Extremely Verbose Utility Company of Greater Metropolitan Area LLC\n"
		rec := newTestExtractor().Extract(text)

		assert.True(t, rec.Issuer.Defaulted)
		assert.NotContains(t, rec.Issuer.Value, "  ")
		assert.LessOrEqual(t, len([]rune(rec.Issuer.Value)), maxIssuerLen)
	})
}
