package exporter

import (
	"sheetexport/pkg/contracts/domain"
)

// Profile names as exposed to callers.
const (
	ProfileHooks   = "hooks"
	ProfileTrades  = "trades"
	ProfileTickers = "tickers"
)

// HookProfile writes the hook event log: Hook, Category, Weather, Timeofday.
func HookProfile() *Table[domain.Hook] {
	return NewTable(ProfileHooks,
		Column[domain.Hook]{Header: "Hook", Value: func(h domain.Hook) any { return h.Text }},
		Column[domain.Hook]{Header: "Category", Value: func(h domain.Hook) any { return h.Category }},
		Column[domain.Hook]{Header: "Weather", Value: func(h domain.Hook) any { return h.Weather }},
		Column[domain.Hook]{Header: "Timeofday", Value: func(h domain.Hook) any { return h.TimeOfDay }},
	)
}

// TradeProfile writes one row per daily trade record, in input order.
func TradeProfile() *Table[domain.TradeRecord] {
	type col = Column[domain.TradeRecord]
	return NewTable(ProfileTrades,
		col{Header: "Date", Value: func(r domain.TradeRecord) any { return r.Date.Format("2006-01-02") }},
		col{Header: "CompanyName", Value: func(r domain.TradeRecord) any { return r.CompanyName }},
		col{Header: "Symbol", Value: func(r domain.TradeRecord) any { return r.CompanySymbol }},
		col{Header: "OpenPrice", Value: func(r domain.TradeRecord) any { return r.OpenPrice }},
		col{Header: "HighPrice", Value: func(r domain.TradeRecord) any { return r.HighPrice }},
		col{Header: "LowPrice", Value: func(r domain.TradeRecord) any { return r.LowPrice }},
		col{Header: "AveragePrice", Value: func(r domain.TradeRecord) any { return r.AveragePrice }},
		col{Header: "PrevAveragePrice", Value: func(r domain.TradeRecord) any { return r.PrevAveragePrice }},
		col{Header: "ClosePrice", Value: func(r domain.TradeRecord) any { return r.ClosePrice }},
		col{Header: "PrevClosePrice", Value: func(r domain.TradeRecord) any { return r.PrevClosePrice }},
		col{Header: "Change", Value: func(r domain.TradeRecord) any { return r.Change }},
		col{Header: "ChangePercent", Value: func(r domain.TradeRecord) any { return r.ChangePercent }},
		col{Header: "NumTrades", Value: func(r domain.TradeRecord) any { return r.NumTrades }},
		col{Header: "Volume", Value: func(r domain.TradeRecord) any { return r.Volume }},
		col{Header: "Value", Value: func(r domain.TradeRecord) any { return r.Value }},
		col{Header: "TradingStatus", Value: func(r domain.TradeRecord) any { return r.TradingStatus }},
	)
}

// TickerSummaryProfile writes per-ticker statistics, see domain.SummarizeTickers.
func TickerSummaryProfile() *Table[domain.TickerSummary] {
	type col = Column[domain.TickerSummary]
	return NewTable(ProfileTickers,
		col{Header: "Ticker", Value: func(s domain.TickerSummary) any { return s.Ticker }},
		col{Header: "CompanyName", Value: func(s domain.TickerSummary) any { return s.CompanyName }},
		col{Header: "LastPrice", Value: func(s domain.TickerSummary) any { return s.LastPrice }},
		col{Header: "LastDate", Value: func(s domain.TickerSummary) any { return s.LastDate }},
		col{Header: "TradingDays", Value: func(s domain.TickerSummary) any { return s.TradingDays }},
		col{Header: "Last10Days", Value: func(s domain.TickerSummary) any { return s.Last10Days }},
		col{Header: "TotalVolume", Value: func(s domain.TickerSummary) any { return s.TotalVolume }},
		col{Header: "TotalValue", Value: func(s domain.TickerSummary) any { return s.TotalValue }},
		col{Header: "AveragePrice", Value: func(s domain.TickerSummary) any { return s.AveragePrice }},
		col{Header: "HighestPrice", Value: func(s domain.TickerSummary) any { return s.HighestPrice }},
		col{Header: "LowestPrice", Value: func(s domain.TickerSummary) any { return s.LowestPrice }},
	)
}
