package testutil

import (
	"time"

	"sheetexport/pkg/contracts/domain"
)

// SampleHooks returns a small, ordered hook log.
func SampleHooks() []domain.Hook {
	return []domain.Hook{
		{Text: "Saw a fox crossing the road", Category: "wildlife", Weather: "rain", TimeOfDay: "morning"},
		{Text: "Street musician played Bach", Category: "culture", Weather: "sunny", TimeOfDay: "afternoon"},
		{Text: "Power outage downtown", Category: "news", Weather: "storm", TimeOfDay: "night"},
	}
}

// SampleTrades returns trades for two tickers over three days. BMNS does
// not trade on the second day.
func SampleTrades() []domain.TradeRecord {
	day := func(d int) time.Time {
		return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	return []domain.TradeRecord{
		{CompanyName: "Bank of Baghdad", CompanySymbol: "BBOB", Date: day(5), OpenPrice: 1.0, HighPrice: 1.1, LowPrice: 0.9, AveragePrice: 1.0, ClosePrice: 1.05, NumTrades: 10, Volume: 1000, Value: 1050, TradingStatus: true},
		{CompanyName: "Bank of Baghdad", CompanySymbol: "BBOB", Date: day(6), OpenPrice: 1.05, HighPrice: 1.2, LowPrice: 1.0, AveragePrice: 1.1, ClosePrice: 1.15, PrevClosePrice: 1.05, Change: 0.1, ChangePercent: 9.52, NumTrades: 12, Volume: 2000, Value: 2300, TradingStatus: true},
		{CompanyName: "Al-Mansour Bank", CompanySymbol: "BMNS", Date: day(5), OpenPrice: 0.5, HighPrice: 0.55, LowPrice: 0.48, AveragePrice: 0.52, ClosePrice: 0.53, NumTrades: 4, Volume: 500, Value: 265, TradingStatus: true},
		{CompanyName: "Al-Mansour Bank", CompanySymbol: "BMNS", Date: day(6), ClosePrice: 0, PrevClosePrice: 0.53, TradingStatus: false},
		{CompanyName: "Bank of Baghdad", CompanySymbol: "BBOB", Date: day(7), OpenPrice: 1.15, HighPrice: 1.15, LowPrice: 1.1, AveragePrice: 1.12, ClosePrice: 1.12, PrevClosePrice: 1.15, Change: -0.03, ChangePercent: -2.61, NumTrades: 8, Volume: 800, Value: 896, TradingStatus: true},
	}
}
