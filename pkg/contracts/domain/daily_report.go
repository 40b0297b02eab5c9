package domain

import (
	"time"
)

// TradeRecord represents a single company's trading data for one day.
type TradeRecord struct {
	CompanyName      string    `json:"company_name" validate:"required"`
	CompanySymbol    string    `json:"company_symbol" validate:"required"`
	Date             time.Time `json:"date" validate:"required"`
	OpenPrice        float64   `json:"open_price" validate:"min=0"`
	HighPrice        float64   `json:"high_price" validate:"min=0"`
	LowPrice         float64   `json:"low_price" validate:"min=0"`
	AveragePrice     float64   `json:"average_price" validate:"min=0"`
	PrevAveragePrice float64   `json:"prev_average_price" validate:"min=0"`
	ClosePrice       float64   `json:"close_price" validate:"min=0"`
	PrevClosePrice   float64   `json:"prev_close_price" validate:"min=0"`
	Change           float64   `json:"change"`
	ChangePercent    float64   `json:"change_percent"`
	NumTrades        int64     `json:"num_trades" validate:"min=0"`
	Volume           int64     `json:"volume" validate:"min=0"`
	Value            float64   `json:"value" validate:"min=0"`
	TradingStatus    bool      `json:"trading_status"` // true if actively traded, false if forward-filled
}
