package domain

import (
	"math"
	"strconv"
	"strings"
)

// Column names of the base property fields, exactly as they appear in an
// imported file header.
const (
	ColumnProperty                  = "Property"
	ColumnNetProfit                 = "Net Profit"
	ColumnCostOfInvestment          = "Cost of Investment"
	ColumnDiscountRate              = "Discount Rate"
	ColumnInitialInvestment         = "Initial Investment"
	ColumnNetOperatingIncome        = "Net Operating Income"
	ColumnMarketPricePerShare       = "Market Price per Share"
	ColumnDividendsOnPreferredStock = "Dividends on Preferred Stock"
	ColumnAverageOutstandingShares  = "Average Outstanding Shares"
	ColumnCurrentMarketValue        = "Current Market Value"
)

// Column names of the derived fields, in output order.
const (
	ColumnROI               = "ROI"
	ColumnNPV               = "NPV"
	ColumnIRR               = "IRR"
	ColumnCashFlow          = "Cash Flow"
	ColumnDebtToEquityRatio = "Debt-to-Equity Ratio"
	ColumnEPS               = "EPS"
	ColumnPERatio           = "P/E Ratio"
	ColumnCapRate           = "Cap Rate"
)

// RequiredColumns lists the ten base columns every imported table must carry,
// in canonical order.
var RequiredColumns = []string{
	ColumnProperty,
	ColumnNetProfit,
	ColumnCostOfInvestment,
	ColumnDiscountRate,
	ColumnInitialInvestment,
	ColumnNetOperatingIncome,
	ColumnMarketPricePerShare,
	ColumnDividendsOnPreferredStock,
	ColumnAverageOutstandingShares,
	ColumnCurrentMarketValue,
}

// DerivedColumns lists the eight metric columns appended by the metrics engine.
var DerivedColumns = []string{
	ColumnROI,
	ColumnNPV,
	ColumnIRR,
	ColumnCashFlow,
	ColumnDebtToEquityRatio,
	ColumnEPS,
	ColumnPERatio,
	ColumnCapRate,
}

// Expected (but not enforced) bounds of DiscountRate on manual entry.
// Values outside this range are accepted and produce meaningless metrics.
const (
	MinDiscountRate = 0.01
	MaxDiscountRate = 1.0
)

// PropertyRecord represents one investment property as supplied by the user
// or by a bulk import. It carries base fields only.
type PropertyRecord struct {
	Property                  string
	NetProfit                 float64
	CostOfInvestment          float64
	DiscountRate              float64
	InitialInvestment         float64
	NetOperatingIncome        float64
	MarketPricePerShare       float64
	DividendsOnPreferredStock float64
	AverageOutstandingShares  float64
	CurrentMarketValue        float64
}

// Metrics holds the eight derived indicators of a single record
type Metrics struct {
	ROI               float64
	NPV               float64
	IRR               float64
	CashFlow          float64
	DebtToEquityRatio float64
	EPS               float64
	PERatio           float64
	CapRate           float64
}

// AugmentedRecord is a PropertyRecord together with its derived metrics.
// It only exists as output of the metrics engine; stores never hold one.
type AugmentedRecord struct {
	PropertyRecord
	Metrics
}

// DiscountRateInExpectedRange reports whether the discount rate lies in the
// interval the entry form allows. The engine never consults this.
func (r PropertyRecord) DiscountRateInExpectedRange() bool {
	return r.DiscountRate > MinDiscountRate && r.DiscountRate <= MaxDiscountRate
}

// NumericFields returns the nine numeric base fields keyed by column name
func (r PropertyRecord) NumericFields() map[string]float64 {
	return map[string]float64{
		ColumnNetProfit:                 r.NetProfit,
		ColumnCostOfInvestment:          r.CostOfInvestment,
		ColumnDiscountRate:              r.DiscountRate,
		ColumnInitialInvestment:         r.InitialInvestment,
		ColumnNetOperatingIncome:        r.NetOperatingIncome,
		ColumnMarketPricePerShare:       r.MarketPricePerShare,
		ColumnDividendsOnPreferredStock: r.DividendsOnPreferredStock,
		ColumnAverageOutstandingShares:  r.AverageOutstandingShares,
		ColumnCurrentMarketValue:        r.CurrentMarketValue,
	}
}

// Values returns the eight metrics keyed by column name
func (m Metrics) Values() map[string]float64 {
	return map[string]float64{
		ColumnROI:               m.ROI,
		ColumnNPV:               m.NPV,
		ColumnIRR:               m.IRR,
		ColumnCashFlow:          m.CashFlow,
		ColumnDebtToEquityRatio: m.DebtToEquityRatio,
		ColumnEPS:               m.EPS,
		ColumnPERatio:           m.PERatio,
		ColumnCapRate:           m.CapRate,
	}
}

// numericTarget returns a pointer to the field backing a numeric column,
// or nil for an unknown column.
func (r *PropertyRecord) numericTarget(column string) *float64 {
	switch column {
	case ColumnNetProfit:
		return &r.NetProfit
	case ColumnCostOfInvestment:
		return &r.CostOfInvestment
	case ColumnDiscountRate:
		return &r.DiscountRate
	case ColumnInitialInvestment:
		return &r.InitialInvestment
	case ColumnNetOperatingIncome:
		return &r.NetOperatingIncome
	case ColumnMarketPricePerShare:
		return &r.MarketPricePerShare
	case ColumnDividendsOnPreferredStock:
		return &r.DividendsOnPreferredStock
	case ColumnAverageOutstandingShares:
		return &r.AverageOutstandingShares
	case ColumnCurrentMarketValue:
		return &r.CurrentMarketValue
	}
	return nil
}

// RecordFromRow builds a PropertyRecord from an imported row.
// Logic:
//   - A required column absent from the row yields a MissingFieldError
//   - An empty numeric cell becomes NaN (a missing value, not a zero)
//   - A numeric cell that does not parse yields a FieldTypeError
//
// Extra columns are ignored.
func RecordFromRow(index int, row Row) (PropertyRecord, error) {
	var rec PropertyRecord

	name, ok := row[ColumnProperty]
	if !ok {
		return PropertyRecord{}, &MissingFieldError{Row: index, Field: ColumnProperty}
	}
	rec.Property = name

	for _, column := range RequiredColumns[1:] {
		raw, ok := row[column]
		if !ok {
			return PropertyRecord{}, &MissingFieldError{Row: index, Field: column}
		}
		value, err := ParseNumber(raw)
		if err != nil {
			return PropertyRecord{}, &FieldTypeError{Row: index, Field: column, Value: raw}
		}
		*rec.numericTarget(column) = value
	}

	return rec, nil
}

// RecordFromFields builds a PropertyRecord from a manual entry: a name and a
// set of numeric fields keyed by column name. Every numeric column must be
// present; a missing one yields a MissingFieldError with Row set to -1.
func RecordFromFields(property string, fields map[string]float64) (PropertyRecord, error) {
	rec := PropertyRecord{Property: property}
	for _, column := range RequiredColumns[1:] {
		value, ok := fields[column]
		if !ok {
			return PropertyRecord{}, &MissingFieldError{Row: -1, Field: column}
		}
		*rec.numericTarget(column) = value
	}
	return rec, nil
}

// ParseNumber converts a table cell into a float64.
// Blank cells are missing values and become NaN.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
