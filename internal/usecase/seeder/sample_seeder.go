package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/propertyflow-backend/internal/domain"
)

// SampleProperties returns the ten-property demonstration portfolio a new
// session can start with. A fresh slice is returned on every call.
func SampleProperties() []domain.PropertyRecord {
	return []domain.PropertyRecord{
		{Property: "Property 1", NetProfit: 100000, CostOfInvestment: 500000, DiscountRate: 0.05, InitialInvestment: 450000, NetOperatingIncome: 80000, MarketPricePerShare: 50, DividendsOnPreferredStock: 5000, AverageOutstandingShares: 20000, CurrentMarketValue: 600000},
		{Property: "Property 2", NetProfit: 80000, CostOfInvestment: 600000, DiscountRate: 0.06, InitialInvestment: 500000, NetOperatingIncome: 75000, MarketPricePerShare: 60, DividendsOnPreferredStock: 6000, AverageOutstandingShares: 18000, CurrentMarketValue: 550000},
		{Property: "Property 3", NetProfit: 120000, CostOfInvestment: 450000, DiscountRate: 0.04, InitialInvestment: 400000, NetOperatingIncome: 90000, MarketPricePerShare: 45, DividendsOnPreferredStock: 4500, AverageOutstandingShares: 22000, CurrentMarketValue: 620000},
		{Property: "Property 4", NetProfit: 90000, CostOfInvestment: 550000, DiscountRate: 0.05, InitialInvestment: 480000, NetOperatingIncome: 82000, MarketPricePerShare: 55, DividendsOnPreferredStock: 5500, AverageOutstandingShares: 19000, CurrentMarketValue: 580000},
		{Property: "Property 5", NetProfit: 110000, CostOfInvestment: 480000, DiscountRate: 0.03, InitialInvestment: 420000, NetOperatingIncome: 88000, MarketPricePerShare: 48, DividendsOnPreferredStock: 4800, AverageOutstandingShares: 21000, CurrentMarketValue: 590000},
		{Property: "Property 6", NetProfit: 95000, CostOfInvestment: 520000, DiscountRate: 0.07, InitialInvestment: 460000, NetOperatingIncome: 83000, MarketPricePerShare: 52, DividendsOnPreferredStock: 5200, AverageOutstandingShares: 20000, CurrentMarketValue: 610000},
		{Property: "Property 7", NetProfit: 105000, CostOfInvestment: 490000, DiscountRate: 0.04, InitialInvestment: 430000, NetOperatingIncome: 86000, MarketPricePerShare: 49, DividendsOnPreferredStock: 4900, AverageOutstandingShares: 20500, CurrentMarketValue: 570000},
		{Property: "Property 8", NetProfit: 88000, CostOfInvestment: 610000, DiscountRate: 0.06, InitialInvestment: 520000, NetOperatingIncome: 74000, MarketPricePerShare: 61, DividendsOnPreferredStock: 6100, AverageOutstandingShares: 17500, CurrentMarketValue: 540000},
		{Property: "Property 9", NetProfit: 115000, CostOfInvestment: 470000, DiscountRate: 0.05, InitialInvestment: 390000, NetOperatingIncome: 91000, MarketPricePerShare: 47, DividendsOnPreferredStock: 4700, AverageOutstandingShares: 22500, CurrentMarketValue: 630000},
		{Property: "Property 10", NetProfit: 100000, CostOfInvestment: 500000, DiscountRate: 0.05, InitialInvestment: 450000, NetOperatingIncome: 80000, MarketPricePerShare: 50, DividendsOnPreferredStock: 5000, AverageOutstandingShares: 20000, CurrentMarketValue: 600000},
	}
}

// SampleSeeder fills a session's manual table with the sample portfolio
type SampleSeeder struct {
	repo domain.SessionRepository
	now  func() time.Time
}

// NewSampleSeeder creates a new SampleSeeder instance
func NewSampleSeeder(repo domain.SessionRepository) *SampleSeeder {
	return &SampleSeeder{
		repo: repo,
		now:  time.Now,
	}
}

// Seed ensures the session's manual table holds the sample portfolio
// If the manual table already has records, it is left alone
func (s *SampleSeeder) Seed(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session for seeding: %w", err)
	}

	if session.Manual.Len() > 0 {
		return nil
	}

	seeded := session.WithStore(session.Manual.Replace(SampleProperties()), s.now())
	if err := s.repo.Save(ctx, seeded); err != nil {
		return fmt.Errorf("failed to save seeded session: %w", err)
	}

	return nil
}
