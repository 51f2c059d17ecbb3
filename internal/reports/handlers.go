package reports

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ReportResponse is the success envelope for generated reports.
type ReportResponse struct {
	Success     bool       `json:"success"`
	Report      ReportData `json:"report"`
	GeneratedAt string     `json:"generatedAt"`
}

// ErrorResponse is the error envelope for report endpoints.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid report type. Must be monthly, campaign, or performance."`
}

// GenerateRequest is the request body for POST /reports.
type GenerateRequest struct {
	Type      string    `json:"type" example:"monthly"`
	DateRange DateRange `json:"dateRange"`
	Format    string    `json:"format,omitempty" example:"csv"`
}

// handleGet generates a report from query parameters. The range defaults
// to the last 30 days.
//
//	@Summary		Generate report
//	@Description	Generates a report of the given type over the from/to date range (yyyy-mm-dd, inclusive).
//	@Tags			reports
//	@Produce		json
//	@Param			type	query		string	false	"Report type (monthly, campaign, performance)"
//	@Param			from	query		string	false	"Range start, yyyy-mm-dd"
//	@Param			to		query		string	false	"Range end, yyyy-mm-dd"
//	@Success		200		{object}	ReportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/reports [get]
func (m *Module) handleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	reportType := q.Get("type")
	if reportType == "" {
		reportType = TypePerformance
	}
	if !ValidType(reportType) {
		writeReportError(w, http.StatusBadRequest, "Invalid report type. Must be monthly, campaign, or performance.")
		return
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	from, to := now.AddDate(0, 0, -30), now
	var err error
	if raw := q.Get("from"); raw != "" {
		if from, err = parseDay(raw); err != nil {
			writeReportError(w, http.StatusBadRequest, "Invalid from date, expected yyyy-mm-dd")
			return
		}
	}
	if raw := q.Get("to"); raw != "" {
		if to, err = parseDay(raw); err != nil {
			writeReportError(w, http.StatusBadRequest, "Invalid to date, expected yyyy-mm-dd")
			return
		}
	}
	if msg, ok := validateRange(from, to); !ok {
		writeReportError(w, http.StatusBadRequest, msg)
		return
	}

	writeReportJSON(w, http.StatusOK, ReportResponse{
		Success:     true,
		Report:      m.generator.Generate(reportType, from, to),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleGenerate generates a report from a request body, optionally
// rendered as a CSV download.
//
//	@Summary		Export report
//	@Description	Generates a report; format "csv" returns a text/csv attachment of the campaign rows.
//	@Tags			reports
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GenerateRequest	true	"Report parameters"
//	@Success		200		{object}	ReportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/reports [post]
func (m *Module) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReportError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Type == "" || req.DateRange.From == "" || req.DateRange.To == "" {
		writeReportError(w, http.StatusBadRequest, "Missing required fields: type, dateRange.from, dateRange.to")
		return
	}
	if !ValidType(req.Type) {
		writeReportError(w, http.StatusBadRequest, "Invalid report type. Must be monthly, campaign, or performance.")
		return
	}

	from, err := parseDay(req.DateRange.From)
	if err != nil {
		writeReportError(w, http.StatusBadRequest, "Invalid dateRange.from, expected yyyy-mm-dd")
		return
	}
	to, err := parseDay(req.DateRange.To)
	if err != nil {
		writeReportError(w, http.StatusBadRequest, "Invalid dateRange.to, expected yyyy-mm-dd")
		return
	}
	if msg, ok := validateRange(from, to); !ok {
		writeReportError(w, http.StatusBadRequest, msg)
		return
	}

	report := m.generator.Generate(req.Type, from, to)

	if req.Format == "csv" {
		writeReportCSV(w, report)
		return
	}
	writeReportJSON(w, http.StatusOK, ReportResponse{
		Success:     true,
		Report:      report,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// writeReportCSV renders the campaign rows as a CSV attachment.
func writeReportCSV(w http.ResponseWriter, report ReportData) {
	filename := fmt.Sprintf("%s-report-%s-to-%s.csv",
		report.Type, report.DateRange.From, report.DateRange.To)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Campaign", "Impressions", "Clicks", "Conversions", "Spend", "Revenue", "CTR", "CPC", "ROAS"})
	for _, c := range report.Data.Campaigns {
		_ = cw.Write([]string{
			c.Name,
			strconv.Itoa(c.Impressions),
			strconv.Itoa(c.Clicks),
			strconv.Itoa(c.Conversions),
			strconv.Itoa(c.Spend),
			strconv.Itoa(c.Revenue),
			strconv.FormatFloat(c.CTR, 'f', -1, 64) + "%",
			strconv.FormatFloat(c.CPC, 'f', -1, 64),
			strconv.FormatFloat(c.ROAS, 'f', -1, 64),
		})
	}
	cw.Flush()
}

func writeReportJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeReportError(w http.ResponseWriter, status int, message string) {
	writeReportJSON(w, status, ErrorResponse{Error: message})
}
