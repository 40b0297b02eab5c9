// Package exporter writes record collections into spreadsheet documents.
//
// The package has two halves:
//
// Profile: says what to write. It owns the header labels and projects a
// record slice into a value matrix whose row 0 is left empty. Table is the
// generic Profile built from column definitions; HookProfile, TradeProfile
// and TickerSummaryProfile are the shipped tables.
//
// Engine: says how to write. It drives a spreadsheet.Application through a
// fixed phase sequence (activate, project, populate data, populate header,
// persist) and always closes the document it opened.
//
// Example usage:
//
//	app, _ := spreadsheet.ForPath("hooks.xlsx", spreadsheet.Options{})
//	engine := exporter.NewEngine(app, logger, nil)
//	err := exporter.Export(ctx, engine, exporter.HookProfile(), hooks, "hooks.xlsx", "A1", "D1")
package exporter
