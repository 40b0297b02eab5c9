// Package spreadsheet is the cell-range collaborator the export engine drives.
//
// A backend implements Application, Document, Sheet and Range. Two backends
// ship with the package:
//
//   - ExcelApplication writes .xlsx workbooks through excelize.
//   - CSVApplication keeps an in-memory grid and saves it as CSV. Bold and
//     column widths are tracked for read-back but cannot be persisted.
//
// ForPath picks the backend from a destination's extension:
//
//	app, err := spreadsheet.ForPath("reports/hooks.xlsx", spreadsheet.Options{SheetName: "Hooks"})
//	doc, err := app.NewDocument()
//	defer doc.Close()
//	sheet, err := doc.ActiveSheet()
//	rng, err := sheet.Range("A1", "D1")
//	err = rng.SetValues([][]any{{"Hook", "Category", "Weather", "Timeofday"}})
//	err = doc.Save("reports/hooks.xlsx")
package spreadsheet
