package domain

import (
	"fmt"
	"sort"
)

// TickerSummary holds per-ticker statistics derived from trade records.
type TickerSummary struct {
	Ticker       string  `json:"ticker" validate:"required,min=2,max=10"`
	CompanyName  string  `json:"company_name"`
	LastPrice    float64 `json:"last_price" validate:"min=0"`
	LastDate     string  `json:"last_date"`
	TradingDays  int     `json:"trading_days" validate:"min=0"`
	Last10Days   string  `json:"last_10_days"`
	TotalVolume  int64   `json:"total_volume" validate:"min=0"`
	TotalValue   float64 `json:"total_value" validate:"min=0"`
	AveragePrice float64 `json:"average_price" validate:"min=0"`
	HighestPrice float64 `json:"highest_price" validate:"min=0"`
	LowestPrice  float64 `json:"lowest_price" validate:"min=0"`
}

// SummarizeTickers groups trade records by symbol and computes one summary
// per ticker, sorted by ticker. Days with a zero close price are treated as
// non-trading days.
func SummarizeTickers(records []TradeRecord) []TickerSummary {
	byTicker := make(map[string][]TradeRecord)
	for _, record := range records {
		byTicker[record.CompanySymbol] = append(byTicker[record.CompanySymbol], record)
	}

	summaries := make([]TickerSummary, 0, len(byTicker))
	for ticker, tickerRecords := range byTicker {
		sort.SliceStable(tickerRecords, func(i, j int) bool {
			return tickerRecords[i].Date.Before(tickerRecords[j].Date)
		})

		summary := TickerSummary{
			Ticker:      ticker,
			CompanyName: tickerRecords[0].CompanyName,
		}

		var priceSum float64
		lowest := 0.0
		for _, record := range tickerRecords {
			if record.ClosePrice <= 0 {
				continue
			}
			summary.TradingDays++
			summary.TotalVolume += record.Volume
			summary.TotalValue += record.Value
			priceSum += record.ClosePrice
			if record.HighPrice > summary.HighestPrice {
				summary.HighestPrice = record.HighPrice
			}
			if record.LowPrice > 0 && (lowest == 0 || record.LowPrice < lowest) {
				lowest = record.LowPrice
			}
		}

		if summary.TradingDays > 0 {
			summary.AveragePrice = priceSum / float64(summary.TradingDays)
			summary.LowestPrice = lowest

			last10 := 0
			for i := len(tickerRecords) - 1; i >= 0; i-- {
				if tickerRecords[i].ClosePrice <= 0 {
					continue
				}
				if summary.LastDate == "" {
					summary.LastPrice = tickerRecords[i].ClosePrice
					summary.LastDate = tickerRecords[i].Date.Format("2006-01-02")
				}
				if last10++; last10 == 10 {
					break
				}
			}
			summary.Last10Days = fmt.Sprintf("%d/10", last10)
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Ticker < summaries[j].Ticker
	})
	return summaries
}
