// Package files discovers the documents written to the export output
// directory. Only .xlsx, .xlsm and .csv files are reported; temporary files
// left by atomic writes are skipped.
package files
