package market

import "time"

// Stub returns the deterministic fallback market set used when no live markets
// can be fetched. Probabilities are kept low so the ROI path stays exercisable
// offline.
func Stub(now time.Time) []Market {
	return []Market{
		{
			ID:               "market-1",
			Question:         "Will Trump win the 2024 election?",
			Description:      "US Presidential election 2024. Resolution source: Official election results from whitehouse.gov and truthsocial.com",
			Domain:           DomainPolitics,
			Probability:      0.25,
			ResolutionSource: "whitehouse.gov, truthsocial.com",
			CreatedAt:        now.Add(-30 * 24 * time.Hour),
			IsNew:            false,
		},
		{
			ID:               "market-2",
			Question:         "Will Bitcoin ETF be approved in Q1 2024?",
			Description:      "SEC approval of Bitcoin ETF. Resolution source: Official SEC announcements from sec.gov",
			Domain:           DomainCrypto,
			Probability:      0.20,
			ResolutionSource: "sec.gov",
			CreatedAt:        now.Add(-15 * 24 * time.Hour),
			IsNew:            false,
		},
		{
			ID:               "market-3",
			Question:         "Will the Fed raise rates in March 2024?",
			Description:      "Federal Reserve interest rate decision. Resolution source: Official Fed announcements from federalreserve.gov",
			Domain:           DomainEconomy,
			Probability:      0.15,
			ResolutionSource: "federalreserve.gov",
			CreatedAt:        now.Add(-10 * 24 * time.Hour),
			IsNew:            false,
		},
		{
			ID:               "market-4",
			Question:         "Will Ethereum ETF be approved in Q2 2024?",
			Description:      "SEC approval of Ethereum ETF. Resolution source: Official SEC announcements from sec.gov",
			Domain:           DomainCrypto,
			Probability:      0.18,
			ResolutionSource: "sec.gov",
			CreatedAt:        now.Add(-6 * time.Hour),
			IsNew:            true,
		},
		{
			ID:               "market-5",
			Question:         "Will the Fed cut rates in June 2024?",
			Description:      "Federal Reserve interest rate decision. Resolution source: Official Fed announcements from federalreserve.gov",
			Domain:           DomainEconomy,
			Probability:      0.12,
			ResolutionSource: "federalreserve.gov",
			CreatedAt:        now.Add(-2 * time.Hour),
			IsNew:            true,
		},
	}
}
