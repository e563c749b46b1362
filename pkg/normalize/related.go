package normalize

import (
	"bytes"
	"encoding/json"
	"strconv"

	"trends-dashboard/pkg/table"
	"trends-dashboard/pkg/trends"
)

const (
	MaxRelatedPerList = 10

	TypeTop    = "Top"
	TypeRising = "Rising"

	NoRelatedMessage = "No related queries found"
)

// RelatedHeader is the column layout of the related-queries table
var RelatedHeader = []string{"Keyword", "Type", "Related Query", "Value"}

// Related flattens each keyword's top then rising lists into one table,
// keeping at most MaxRelatedPerList rows per list in source order.
func Related(related trends.RelatedQueries, keywords []string) *table.Table {
	var keywordCells, typeCells, queryCells, valueCells []table.Cell

	emit := func(keyword, kind string, rows []trends.RankedQuery) {
		if len(rows) > MaxRelatedPerList {
			rows = rows[:MaxRelatedPerList]
		}
		for _, row := range rows {
			query := ""
			if row.Query != nil {
				query = *row.Query
			}
			keywordCells = append(keywordCells, table.String(keyword))
			typeCells = append(typeCells, table.String(kind))
			queryCells = append(queryCells, table.String(query))
			valueCells = append(valueCells, rawCell(row.Value))
		}
	}

	for _, keyword := range keywords {
		bundle, ok := related[keyword]
		if !ok {
			continue
		}
		emit(keyword, TypeTop, bundle.Top)
		emit(keyword, TypeRising, bundle.Rising)
	}

	if len(keywordCells) == 0 {
		return table.Message(NoRelatedMessage)
	}

	return table.New().
		MustAddColumn(RelatedHeader[0], keywordCells).
		MustAddColumn(RelatedHeader[1], typeCells).
		MustAddColumn(RelatedHeader[2], queryCells).
		MustAddColumn(RelatedHeader[3], valueCells)
}

// rawCell passes a provider score through unchanged: whole numbers become
// integers, everything else keeps its text. Missing values become "".
func rawCell(raw json.RawMessage) table.Cell {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return table.String("")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return table.String(s)
		}
	}

	if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return table.Int(n)
	}

	return table.String(string(raw))
}
