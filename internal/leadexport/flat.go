package leadexport

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/mpetrova/hirescout/internal/store/ports"
)

var flatHeader = []string{
	"company_name", "domain", "website", "industry", "employee_count",
	"urgency_score", "job_title", "department", "location", "job_url",
	"posting_date", "decision_maker", "decision_maker_title", "decision_maker_email",
}

// WriteFlat renders the flat-per-job projection in the requested format.
func WriteFlat(w io.Writer, rows []*ports.ExportJobRow, format Format) error {
	switch format {
	case FormatCSV:
		return writeFlatCSV(w, rows)
	case FormatJSON:
		return writeFlatJSON(w, rows)
	default:
		return errUnsupportedFormat(format)
	}
}

func writeFlatCSV(w io.Writer, rows []*ports.ExportJobRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(flatHeader); err != nil {
		return err
	}
	for _, r := range rows {
		employeeCount := ""
		if r.EmployeeCount != nil {
			employeeCount = strconv.Itoa(*r.EmployeeCount)
		}
		makerName, makerTitle, makerEmail := "", "", ""
		if r.DecisionMaker != nil {
			makerName = r.DecisionMaker.PersonName
			makerTitle = r.DecisionMaker.Title
			if r.DecisionMaker.Email != nil {
				makerEmail = *r.DecisionMaker.Email
			}
		}
		record := []string{
			r.CompanyName, r.Domain, r.Website, r.Industry, employeeCount,
			strconv.Itoa(r.UrgencyScore), r.JobTitle, r.Department, r.Location, r.JobURL,
			r.PostingDate, makerName, makerTitle, makerEmail,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeFlatJSON(w io.Writer, rows []*ports.ExportJobRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
