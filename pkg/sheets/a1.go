package sheets

import (
	"strconv"
	"strings"
)

// quoteTitle quotes a tab name for A1 notation, doubling embedded quotes
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// columnLetters converts a 1-based column index to letters: 1 -> A, 27 -> AA
func columnLetters(col int) string {
	if col < 1 {
		col = 1
	}
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}

// cellRange renders the A1 reference of a single cell in the named tab
func cellRange(title string, row, col int) string {
	if row < 1 {
		row = 1
	}
	return quoteTitle(title) + "!" + columnLetters(col) + strconv.Itoa(row)
}
