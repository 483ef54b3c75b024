// Package loader turns files and SQL queries into grids.
//
// CSV and TSV files are read as UTF-8, with an optional byte-order mark, and
// fall back to GBK when the bytes are not valid UTF-8. Spreadsheet formats are
// recognized by extension but not decoded.
package loader
