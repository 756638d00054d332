package leadexport

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/mpetrova/hirescout/internal/store/ports"
)

var groupedHeader = []string{
	"company_name", "domain", "website", "industry", "employee_count",
	"urgency_score", "decision_maker", "decision_maker_title", "decision_maker_email",
	"job_count", "job_titles",
}

// WriteGrouped renders the grouped-by-company projection in the requested
// format. CSV flattens each company's jobs into one "job_titles" cell
// (semicolon-joined); JSON keeps the nested shape Store.ExportGrouped
// returns.
func WriteGrouped(w io.Writer, groups []*ports.ExportCompanyGroup, format Format) error {
	switch format {
	case FormatCSV:
		return writeGroupedCSV(w, groups)
	case FormatJSON:
		return writeGroupedJSON(w, groups)
	default:
		return errUnsupportedFormat(format)
	}
}

func writeGroupedCSV(w io.Writer, groups []*ports.ExportCompanyGroup) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(groupedHeader); err != nil {
		return err
	}
	for _, g := range groups {
		c := g.Company
		employeeCount := ""
		if c.EmployeeCount != nil {
			employeeCount = strconv.Itoa(*c.EmployeeCount)
		}
		industry := ""
		if c.Industry != nil {
			industry = *c.Industry
		}
		makerName, makerTitle, makerEmail := "", "", ""
		if g.Maker != nil {
			makerName = g.Maker.PersonName
			makerTitle = g.Maker.Title
			if g.Maker.Email != nil {
				makerEmail = *g.Maker.Email
			}
		}
		titles := ""
		for i, j := range g.Jobs {
			if i > 0 {
				titles += "; "
			}
			titles += j.Title
		}
		record := []string{
			c.Name, c.Domain, c.Website, industry, employeeCount,
			strconv.Itoa(c.UrgencyScore), makerName, makerTitle, makerEmail,
			strconv.Itoa(len(g.Jobs)), titles,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeGroupedJSON(w io.Writer, groups []*ports.ExportCompanyGroup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(groups)
}
