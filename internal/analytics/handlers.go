package analytics

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DataResponse is the success envelope for GET /analytics.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// EventResponse is the envelope for POST /analytics.
type EventResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message" example:"Analytics event recorded"`
}

// ErrorResponse is the error envelope for all analytics endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Overview bundles every dataset, returned when no type is requested.
type Overview struct {
	Metrics   Metrics           `json:"metrics"`
	Revenue   []RevenuePoint    `json:"revenue"`
	Campaigns []CampaignSummary `json:"campaigns"`
}

// handleGet serves one dataset selected by the type query parameter, or
// the combined overview when the parameter is absent or unknown.
//
//	@Summary		Fetch analytics data
//	@Description	Returns the dataset named by type (metrics, revenue, campaigns, traffic, devices), or the full overview.
//	@Tags			analytics
//	@Produce		json
//	@Param			type	query		string	false	"Dataset name"
//	@Success		200		{object}	DataResponse
//	@Router			/analytics [get]
func (m *Module) handleGet(w http.ResponseWriter, r *http.Request) {
	var data any
	switch r.URL.Query().Get("type") {
	case "metrics":
		data = currentMetrics()
	case "revenue":
		data = revenueSeries()
	case "campaigns":
		data = campaignSummaries()
	case "traffic":
		data = trafficSources()
	case "devices":
		data = deviceBreakdown()
	default:
		data = Overview{
			Metrics:   currentMetrics(),
			Revenue:   revenueSeries(),
			Campaigns: campaignSummaries(),
		}
	}
	writeAnalyticsJSON(w, http.StatusOK, DataResponse{Success: true, Data: data})
}

// handleRecordEvent persists a client-side analytics event.
//
//	@Summary		Record analytics event
//	@Tags			analytics
//	@Accept			json
//	@Produce		json
//	@Param			event	body		object	true	"Arbitrary event payload"
//	@Success		200		{object}	EventResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/analytics [post]
func (m *Module) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeAnalyticsJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Failed to record analytics event"})
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		writeAnalyticsJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Failed to record analytics event"})
		return
	}
	if err := m.insertEvent(r.Context(), uuid.NewString(), string(raw), time.Now().UTC()); err != nil {
		m.logger.Error("record analytics event failed", zap.Error(err))
		writeAnalyticsJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to record analytics event"})
		return
	}

	writeAnalyticsJSON(w, http.StatusOK, EventResponse{Success: true, Message: "Analytics event recorded"})
}

func writeAnalyticsJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
