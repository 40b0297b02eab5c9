package records

import (
	"fmt"
	"time"

	"sheetexport/pkg/contracts/domain"
)

const dateLayout = "2006-01-02"

type hookRow struct {
	Hook      string `parquet:"hook"`
	Category  string `parquet:"category"`
	Weather   string `parquet:"weather"`
	TimeOfDay string `parquet:"time_of_day"`
}

type tradeRow struct {
	Date             string  `parquet:"date"`
	CompanyName      string  `parquet:"company_name"`
	CompanySymbol    string  `parquet:"company_symbol"`
	OpenPrice        float64 `parquet:"open_price"`
	HighPrice        float64 `parquet:"high_price"`
	LowPrice         float64 `parquet:"low_price"`
	AveragePrice     float64 `parquet:"average_price"`
	PrevAveragePrice float64 `parquet:"prev_average_price"`
	ClosePrice       float64 `parquet:"close_price"`
	PrevClosePrice   float64 `parquet:"prev_close_price"`
	Change           float64 `parquet:"change"`
	ChangePercent    float64 `parquet:"change_percent"`
	NumTrades        int64   `parquet:"num_trades"`
	Volume           int64   `parquet:"volume"`
	Value            float64 `parquet:"value"`
	TradingStatus    bool    `parquet:"trading_status"`
}

// LoadHooks reads hooks from a .json or .parquet file.
func LoadHooks(path string) ([]domain.Hook, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return ReadJSONFile[domain.Hook](path)
	}

	rows, err := ReadParquetFile[hookRow](path)
	if err != nil {
		return nil, err
	}
	hooks := make([]domain.Hook, len(rows))
	for i, r := range rows {
		hooks[i] = domain.Hook{Text: r.Hook, Category: r.Category, Weather: r.Weather, TimeOfDay: r.TimeOfDay}
	}
	return hooks, nil
}

// LoadTrades reads trade records from a .json or .parquet file.
func LoadTrades(path string) ([]domain.TradeRecord, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return ReadJSONFile[domain.TradeRecord](path)
	}

	rows, err := ReadParquetFile[tradeRow](path)
	if err != nil {
		return nil, err
	}
	trades := make([]domain.TradeRecord, len(rows))
	for i, r := range rows {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i, r.Date, err)
		}
		trades[i] = domain.TradeRecord{
			CompanyName:      r.CompanyName,
			CompanySymbol:    r.CompanySymbol,
			Date:             date,
			OpenPrice:        r.OpenPrice,
			HighPrice:        r.HighPrice,
			LowPrice:         r.LowPrice,
			AveragePrice:     r.AveragePrice,
			PrevAveragePrice: r.PrevAveragePrice,
			ClosePrice:       r.ClosePrice,
			PrevClosePrice:   r.PrevClosePrice,
			Change:           r.Change,
			ChangePercent:    r.ChangePercent,
			NumTrades:        r.NumTrades,
			Volume:           r.Volume,
			Value:            r.Value,
			TradingStatus:    r.TradingStatus,
		}
	}
	return trades, nil
}

// WriteHooksParquet stores hooks in the parquet layout LoadHooks reads.
func WriteHooksParquet(path string, hooks []domain.Hook) error {
	rows := make([]hookRow, len(hooks))
	for i, h := range hooks {
		rows[i] = hookRow{Hook: h.Text, Category: h.Category, Weather: h.Weather, TimeOfDay: h.TimeOfDay}
	}
	return WriteParquetFile(path, rows)
}

// WriteTradesParquet stores trades in the parquet layout LoadTrades reads.
func WriteTradesParquet(path string, trades []domain.TradeRecord) error {
	rows := make([]tradeRow, len(trades))
	for i, t := range trades {
		rows[i] = tradeRow{
			Date:             t.Date.Format(dateLayout),
			CompanyName:      t.CompanyName,
			CompanySymbol:    t.CompanySymbol,
			OpenPrice:        t.OpenPrice,
			HighPrice:        t.HighPrice,
			LowPrice:         t.LowPrice,
			AveragePrice:     t.AveragePrice,
			PrevAveragePrice: t.PrevAveragePrice,
			ClosePrice:       t.ClosePrice,
			PrevClosePrice:   t.PrevClosePrice,
			Change:           t.Change,
			ChangePercent:    t.ChangePercent,
			NumTrades:        t.NumTrades,
			Volume:           t.Volume,
			Value:            t.Value,
			TradingStatus:    t.TradingStatus,
		}
	}
	return WriteParquetFile(path, rows)
}
