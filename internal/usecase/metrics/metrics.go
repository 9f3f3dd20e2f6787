package metrics

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/simaogato/propertyflow-backend/internal/domain"
)

// HorizonPeriods is the fixed number of periods discounted by NPV
const HorizonPeriods = 5

// irrPlaces is the number of decimal places IRR is rounded to
const irrPlaces = 2

// Calculate derives the eight metrics of a single record from its own base fields.
// Logic:
//   - ROI      = NetProfit / CostOfInvestment * 100
//   - NPV      = sum over t=1..5 of NOI / (1+DiscountRate)^t, minus InitialInvestment
//   - IRR      = round(100 * (1+DiscountRate)^2, 2), a closed-form approximation, not a root solve
//   - CashFlow = NetProfit - InitialInvestment
//   - D/E      = CostOfInvestment / NetProfit
//   - EPS      = (NetProfit - DividendsOnPreferredStock) / AverageOutstandingShares
//   - P/E      = MarketPricePerShare / EPS
//   - CapRate  = NOI / CurrentMarketValue
//
// Division is unguarded: a zero denominator yields +Inf, -Inf or NaN and is not an error.
// DiscountRate is not range checked.
func Calculate(rec domain.PropertyRecord) domain.Metrics {
	eps := (rec.NetProfit - rec.DividendsOnPreferredStock) / rec.AverageOutstandingShares

	return domain.Metrics{
		ROI:               rec.NetProfit / rec.CostOfInvestment * 100,
		NPV:               NetPresentValue(rec.NetOperatingIncome, rec.DiscountRate, rec.InitialInvestment),
		IRR:               ApproximateIRR(rec.DiscountRate),
		CashFlow:          rec.NetProfit - rec.InitialInvestment,
		DebtToEquityRatio: rec.CostOfInvestment / rec.NetProfit,
		EPS:               eps,
		PERatio:           rec.MarketPricePerShare / eps,
		CapRate:           rec.NetOperatingIncome / rec.CurrentMarketValue,
	}
}

// NetPresentValue discounts a constant income over HorizonPeriods periods and
// subtracts the initial outlay.
func NetPresentValue(income, rate, initial float64) float64 {
	sum := 0.0
	for t := 1; t <= HorizonPeriods; t++ {
		sum += income / math.Pow(1+rate, float64(t))
	}
	return sum - initial
}

// ApproximateIRR returns 100 * (1 + rate)^2 rounded to two decimal places.
// The rounding happens in decimal so that binary artefacts such as
// 110.25000000000001 do not leak into the result. Non-finite values are
// returned unrounded.
func ApproximateIRR(rate float64) float64 {
	v := 100 * math.Pow(1+rate, 2)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(irrPlaces).InexactFloat64()
}

// Augment computes the metrics of every record and returns the augmented
// table in input order. The input slice is not modified.
func Augment(records []domain.PropertyRecord) []domain.AugmentedRecord {
	out := make([]domain.AugmentedRecord, len(records))
	for i, rec := range records {
		out[i] = domain.AugmentedRecord{
			PropertyRecord: rec,
			Metrics:        Calculate(rec),
		}
	}
	return out
}

// AugmentStore recomputes the whole content of a store
func AugmentStore(store domain.RecordStore) []domain.AugmentedRecord {
	return Augment(store.Records())
}

// AugmentTable converts the rows of a raw table into records and augments them.
// Returns a MissingFieldError (or FieldTypeError) for the first row that is not
// a complete record; no partial result is returned.
func AugmentTable(table *domain.Table) ([]domain.AugmentedRecord, error) {
	records, err := table.Records()
	if err != nil {
		return nil, err
	}
	return Augment(records), nil
}
