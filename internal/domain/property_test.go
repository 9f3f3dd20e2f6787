package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRow(name string) Row {
	return Row{
		ColumnProperty:                  name,
		ColumnNetProfit:                 "100000",
		ColumnCostOfInvestment:          "500000",
		ColumnDiscountRate:              "0.05",
		ColumnInitialInvestment:         "450000",
		ColumnNetOperatingIncome:        "80000",
		ColumnMarketPricePerShare:       "50",
		ColumnDividendsOnPreferredStock: "5000",
		ColumnAverageOutstandingShares:  "20000",
		ColumnCurrentMarketValue:        "600000",
	}
}

func TestRecordFromRow(t *testing.T) {
	row := sampleRow("Property 1")
	row["Notes"] = "ignored"

	rec, err := RecordFromRow(0, row)
	require.NoError(t, err)

	assert.Equal(t, PropertyRecord{
		Property:                  "Property 1",
		NetProfit:                 100000,
		CostOfInvestment:          500000,
		DiscountRate:              0.05,
		InitialInvestment:         450000,
		NetOperatingIncome:        80000,
		MarketPricePerShare:       50,
		DividendsOnPreferredStock: 5000,
		AverageOutstandingShares:  20000,
		CurrentMarketValue:        600000,
	}, rec)
}

func TestRecordFromRow_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(Row)
		wantField string
		wantType  bool
	}{
		{
			name:      "missing property name",
			mutate:    func(r Row) { delete(r, ColumnProperty) },
			wantField: ColumnProperty,
		},
		{
			name:      "missing numeric field",
			mutate:    func(r Row) { delete(r, ColumnDiscountRate) },
			wantField: ColumnDiscountRate,
		},
		{
			name:      "text in numeric field",
			mutate:    func(r Row) { r[ColumnNetProfit] = "a lot" },
			wantField: ColumnNetProfit,
			wantType:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := sampleRow("Property 1")
			tt.mutate(row)

			_, err := RecordFromRow(3, row)
			require.Error(t, err)

			if tt.wantType {
				var typeErr *FieldTypeError
				require.True(t, errors.As(err, &typeErr))
				assert.Equal(t, tt.wantField, typeErr.Field)
				assert.Equal(t, 3, typeErr.Row)
				return
			}
			var missingErr *MissingFieldError
			require.True(t, errors.As(err, &missingErr))
			assert.Equal(t, tt.wantField, missingErr.Field)
			assert.Contains(t, err.Error(), "row 4")
		})
	}
}

func TestRecordFromRow_BlankCellIsNaN(t *testing.T) {
	row := sampleRow("Property 1")
	row[ColumnNetProfit] = "  "

	rec, err := RecordFromRow(0, row)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(rec.NetProfit))
}

func TestRecordFromFields(t *testing.T) {
	fields := PropertyRecord{
		NetProfit:                 1,
		CostOfInvestment:          2,
		DiscountRate:              0.5,
		InitialInvestment:         3,
		NetOperatingIncome:        4,
		MarketPricePerShare:       5,
		DividendsOnPreferredStock: 6,
		AverageOutstandingShares:  7,
		CurrentMarketValue:        8,
	}.NumericFields()

	rec, err := RecordFromFields("Manual", fields)
	require.NoError(t, err)
	assert.Equal(t, "Manual", rec.Property)
	assert.Equal(t, 0.5, rec.DiscountRate)
	assert.Equal(t, 8.0, rec.CurrentMarketValue)

	delete(fields, ColumnAverageOutstandingShares)
	_, err = RecordFromFields("Manual", fields)

	var missingErr *MissingFieldError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, ColumnAverageOutstandingShares, missingErr.Field)
	assert.Equal(t, -1, missingErr.Row)
	assert.NotContains(t, err.Error(), "row")
}

func TestPropertyRecord_DiscountRateInExpectedRange(t *testing.T) {
	tests := []struct {
		rate float64
		want bool
	}{
		{0.05, true},
		{1.0, true},
		{0.01, false},
		{0, false},
		{1.5, false},
		{-0.2, false},
	}

	for _, tt := range tests {
		rec := PropertyRecord{DiscountRate: tt.rate}
		assert.Equal(t, tt.want, rec.DiscountRateInExpectedRange(), "rate %v", tt.rate)
	}
}
