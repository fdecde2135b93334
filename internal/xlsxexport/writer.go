// Package xlsxexport renders bulk analysis results as an Excel workbook.
package xlsxexport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"legalynx/internal/analysis"
	"legalynx/internal/domain"
)

const (
	ResultsSheet = "Results"
	RisksSheet   = "Risks"
)

// resultColumns defines the header row of the results sheet.
var resultColumns = []string{
	"#",
	"Title",
	"Status",
	"Risk Score",
	"Summary",
	"Clauses",
	"Risk Count",
	"Compliance Issues",
	"Recommendations",
	"Error",
}

// riskColumns defines the header row of the risks sheet.
var riskColumns = []string{
	"#",
	"Title",
	"Risk",
	"Severity",
	"Location",
	"Recommendation",
}

// WriteBatch renders results into a workbook with one row per contract on the results
// sheet and one row per identified risk on the risks sheet.
func WriteBatch(results []domain.BatchItemResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile starts with "Sheet1".
	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(RisksSheet); err != nil {
		return nil, fmt.Errorf("creating risks sheet: %w", err)
	}

	if err := writeRow(f, ResultsSheet, 1, toCells(resultColumns)); err != nil {
		return nil, err
	}
	if err := writeRow(f, RisksSheet, 1, toCells(riskColumns)); err != nil {
		return nil, err
	}

	riskRow := 2
	for i := range results {
		res := &results[i]
		if err := writeRow(f, ResultsSheet, i+2, resultToRow(res)); err != nil {
			return nil, err
		}
		for _, risk := range riskRows(res) {
			if err := writeRow(f, RisksSheet, riskRow, risk); err != nil {
				return nil, err
			}
			riskRow++
		}
	}

	_ = f.SetColWidth(ResultsSheet, "B", "B", 28)
	_ = f.SetColWidth(ResultsSheet, "E", "E", 60)
	_ = f.SetColWidth(ResultsSheet, "F", "F", 48)
	_ = f.SetColWidth(ResultsSheet, "H", "J", 48)
	_ = f.SetColWidth(RisksSheet, "B", "C", 40)
	_ = f.SetColWidth(RisksSheet, "E", "F", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// resultToRow converts one batch item into a results row. Failed items only carry their error.
func resultToRow(res *domain.BatchItemResult) []interface{} {
	row := make([]interface{}, len(resultColumns))
	row[0] = res.Index + 1
	row[1] = res.Title
	if !res.Success {
		row[2] = "Failed"
		row[9] = res.Error
		return row
	}

	row[2] = "Analyzed"
	if _, raw := res.Result[analysis.KeyRawResult]; raw {
		row[2] = "Analyzed (unparsed response)"
	}
	row[3] = analysis.RiskScore(res.Result)
	row[4] = text(res.Result[analysis.KeySummary])
	row[5] = joinList(res.Result[analysis.KeyClauses], "")
	row[6] = listLen(res.Result[analysis.KeyRisks])
	row[7] = joinList(res.Result[analysis.KeyComplianceIssues], "issue")
	row[8] = joinList(res.Result[analysis.KeyRecommendations], "")
	return row
}

func riskRows(res *domain.BatchItemResult) [][]interface{} {
	if !res.Success {
		return nil
	}
	items, _ := res.Result[analysis.KeyRisks].([]interface{})
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			rows = append(rows, []interface{}{res.Index + 1, res.Title, text(item), "", "", ""})
			continue
		}
		rows = append(rows, []interface{}{
			res.Index + 1,
			res.Title,
			text(m["risk"]),
			text(m["severity"]),
			text(m["location"]),
			text(m["recommendation"]),
		})
	}
	return rows
}

// joinList renders a list as "; "-separated text. For lists of objects, field picks the
// member to show.
func joinList(v interface{}, field string) string {
	items, ok := v.([]interface{})
	if !ok {
		return text(v)
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok && field != "" {
			parts = append(parts, text(m[field]))
			continue
		}
		parts = append(parts, text(item))
	}
	return strings.Join(parts, "; ")
}

func listLen(v interface{}) int {
	items, _ := v.([]interface{})
	return len(items)
}

func text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns a sanitized filename: {name}_{YYYY-MM-DD}.xlsx
func BuildFilename(name string) string {
	return fmt.Sprintf("%s_%s.xlsx", SanitizeFilename(name), time.Now().Format("2006-01-02"))
}
