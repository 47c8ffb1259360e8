package valuation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spello/valuation/date"
)

func TestReadPriceCSV(t *testing.T) {
	in := strings.Join([]string{
		"Symbol,Date,Price,Currency,Name",
		"MSFT,2025-07-01,100.50,USD,Microsoft Corp",
		"AUD=X,2025-07-01,1.52,AUD,",
		"MSFT,not-a-date,101,USD,Microsoft Corp",
		"MSFT,2025-07-02,expensive,USD,Microsoft Corp",
	}, "\n")

	observations, err := ReadPriceCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, observations, 4)

	assert.Equal(t, "MSFT", observations[0].Symbol)
	assert.Equal(t, date.MustParse("2025-07-01"), observations[0].On)
	assert.True(t, observations[0].Price.Equal(M(100.50, "USD")))
	assert.Equal(t, "Microsoft Corp", observations[0].Name)
	assert.NoError(t, observations[0].Validate())
	assert.NoError(t, observations[1].Validate())

	// Unparsable rows come back invalid so the store load counts them.
	assert.ErrorIs(t, observations[2].Validate(), ErrMalformedObservation)
	assert.ErrorIs(t, observations[3].Validate(), ErrMalformedObservation)
}

func TestReadPriceCSVRaggedRow(t *testing.T) {
	in := strings.Join([]string{
		"Symbol,Date,Price,Currency,Name",
		"MSFT,2025-07-01,100.50,USD,Microsoft Corp",
		"MSFT,2025-07-02",
		"AAPL,2025-07-02,210,USD,Apple Inc.",
	}, "\n")

	observations, err := ReadPriceCSV(strings.NewReader(in))
	require.NoError(t, err, "a ragged row must not abort the archive")
	require.Len(t, observations, 3)

	// The short row is invalid; the rows around it survive.
	assert.NoError(t, observations[0].Validate())
	assert.ErrorIs(t, observations[1].Validate(), ErrMalformedObservation)
	assert.NoError(t, observations[2].Validate())
	assert.Equal(t, "AAPL", observations[2].Symbol)
}

func TestReadPriceCSVColumnOrderFree(t *testing.T) {
	in := "Price,Symbol,Currency,Date\n42,VAS.AX,AUD,2025-07-01\n"
	observations, err := ReadPriceCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.True(t, observations[0].Price.Equal(M(42, "AUD")))
}

func TestReadPriceCSVMissingColumn(t *testing.T) {
	_, err := ReadPriceCSV(strings.NewReader("Symbol,Date,Price\nMSFT,2025-07-01,1\n"))
	assert.ErrorContains(t, err, "currency")
}

func TestReadHoldingsCSV(t *testing.T) {
	in := strings.Join([]string{
		"Symbol,Name,Class,Currency,Units Held,Cost Basis",
		"MSFT,Microsoft Corp,International Shares,USD,10,800",
		`CASH,Cash,Cash,AUD,"1,500.25",`,
	}, "\n")

	holdings, err := ReadHoldingsCSV(strings.NewReader(in), "AUD")
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	assert.Equal(t, "MSFT", holdings[0].Symbol)
	assert.Equal(t, "International Shares", holdings[0].Class)
	assert.True(t, holdings[0].Units.Equal(Q(10)))
	assert.True(t, holdings[0].CostBasis.Equal(M(800, "AUD")))
	assert.True(t, holdings[0].HasCostBasis())

	assert.True(t, holdings[1].IsCash())
	assert.True(t, holdings[1].Units.Equal(Q(1500.25)))
	assert.False(t, holdings[1].HasCostBasis())
}

func TestReadHoldingsCSVBadUnitsFatal(t *testing.T) {
	in := "Symbol,Name,Class,Currency,Units Held\nMSFT,Microsoft,Shares,USD,lots\n"
	_, err := ReadHoldingsCSV(strings.NewReader(in), "AUD")
	assert.ErrorContains(t, err, "invalid units")
}
