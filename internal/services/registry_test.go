package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetexport/internal/exporter"
	"sheetexport/internal/records"
	"sheetexport/pkg/contracts/domain"
)

func TestDefaultRegistry(t *testing.T) {
	profiles := DefaultRegistry().Profiles()
	require.Len(t, profiles, 3)

	names := []string{profiles[0].Name, profiles[1].Name, profiles[2].Name}
	assert.Equal(t, []string{"hooks", "tickers", "trades"}, names)
	for _, p := range profiles {
		assert.Len(t, p.Headers, p.Columns, p.Name)
		assert.NotEmpty(t, p.Description)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	b := Bind("hooks", exporter.HookProfile, records.LoadHooks, identity[domain.Hook])

	require.NoError(t, r.Register(b))
	assert.Error(t, r.Register(b))
	assert.Panics(t, func() { r.MustRegister(b) })

	got, ok := r.Lookup("hooks")
	assert.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestBinding_Prepare(t *testing.T) {
	b := Bind("tickers", exporter.TickerSummaryProfile, records.LoadTrades, domain.SummarizeTickers)
	bold := false

	prepared, err := b.prepare(Input{Records: []byte(`[
		{"company_name": "A", "company_symbol": "AAA", "date": "2025-01-05T00:00:00Z", "close_price": 2, "high_price": 2, "low_price": 1},
		{"company_name": "A", "company_symbol": "AAA", "date": "2025-01-06T00:00:00Z", "close_price": 3, "high_price": 3, "low_price": 2},
		{"company_name": "B", "company_symbol": "BBB", "date": "2025-01-05T00:00:00Z", "close_price": 1, "high_price": 1, "low_price": 1}
	]`)}, 10, &bold)
	require.NoError(t, err)

	assert.Equal(t, 2, prepared.records)
	assert.False(t, prepared.layout.BoldHeaders())
	require.NoError(t, prepared.project())
	assert.Equal(t, 2, prepared.layout.RowCount())

	_, err = b.prepare(Input{}, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = b.prepare(Input{Records: []byte(`[{}, {}]`)}, 1, nil)
	assert.ErrorIs(t, err, ErrTooManyRecords)
}
