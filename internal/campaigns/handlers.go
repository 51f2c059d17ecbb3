package campaigns

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ListResponse is the envelope for GET /campaigns.
type ListResponse struct {
	Success bool       `json:"success"`
	Data    []Campaign `json:"data"`
	Total   int        `json:"total"`
}

// MutationResponse is the envelope for create, update, and delete.
type MutationResponse struct {
	Success bool     `json:"success"`
	Data    Campaign `json:"data"`
	Message string   `json:"message"`
}

// ErrorResponse is the error envelope for all campaign endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error" example:"Campaign not found"`
}

// CreateRequest is the request body for POST /campaigns.
type CreateRequest struct {
	Name   string  `json:"name" example:"Summer Sale 2025"`
	Status string  `json:"status,omitempty" example:"Active"`
	Budget float64 `json:"budget" example:"15000"`
}

// UpdateRequest is the request body for PUT /campaigns. All fields except
// id are optional; omitted fields keep their current value.
type UpdateRequest struct {
	ID          int64    `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	Spent       *float64 `json:"spent,omitempty"`
	Conversions *int     `json:"conversions,omitempty"`
	ROI         *float64 `json:"roi,omitempty"`
}

// handleList returns campaigns, optionally filtered by status.
//
//	@Summary		List campaigns
//	@Description	Returns all campaigns. The status filter is case-insensitive.
//	@Tags			campaigns
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status (Active, Paused, Completed)"
//	@Success		200		{object}	ListResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/campaigns [get]
func (m *Module) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := m.store.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		m.logger.Error("list campaigns failed", zap.Error(err))
		writeCampaignError(w, http.StatusInternalServerError, "Failed to fetch campaigns")
		return
	}
	writeCampaignJSON(w, http.StatusOK, ListResponse{Success: true, Data: list, Total: len(list)})
}

// handleCreate creates a campaign. Spent, conversions, and ROI always
// start at zero regardless of the request body.
//
//	@Summary		Create campaign
//	@Tags			campaigns
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRequest	true	"Campaign to create"
//	@Success		200		{object}	MutationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/campaigns [post]
func (m *Module) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeCampaignError(w, http.StatusBadRequest, "Campaign name is required")
		return
	}
	if req.Status == "" {
		req.Status = StatusActive
	}

	now := time.Now().UTC()
	campaign := Campaign{
		Name:      req.Name,
		Status:    req.Status,
		Budget:    req.Budget,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Insert(r.Context(), &campaign); err != nil {
		m.logger.Error("create campaign failed", zap.Error(err))
		writeCampaignError(w, http.StatusInternalServerError, "Failed to create campaign")
		return
	}

	m.publish(r.Context(), TopicCampaignCreated, &campaign)
	writeCampaignJSON(w, http.StatusOK, MutationResponse{
		Success: true,
		Data:    campaign,
		Message: "Campaign created successfully",
	})
}

// handleUpdate applies a partial update identified by the id in the body.
//
//	@Summary		Update campaign
//	@Tags			campaigns
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateRequest	true	"Fields to update"
//	@Success		200		{object}	MutationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/campaigns [put]
func (m *Module) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	campaign, err := m.store.Update(r.Context(), req.ID, UpdateParams{
		Name:        req.Name,
		Status:      req.Status,
		Budget:      req.Budget,
		Spent:       req.Spent,
		Conversions: req.Conversions,
		ROI:         req.ROI,
	})
	if err != nil {
		m.logger.Error("update campaign failed", zap.Int64("id", req.ID), zap.Error(err))
		writeCampaignError(w, http.StatusInternalServerError, "Failed to update campaign")
		return
	}
	if campaign == nil {
		writeCampaignError(w, http.StatusNotFound, "Campaign not found")
		return
	}

	m.publish(r.Context(), TopicCampaignUpdated, campaign)
	writeCampaignJSON(w, http.StatusOK, MutationResponse{
		Success: true,
		Data:    *campaign,
		Message: "Campaign updated successfully",
	})
}

// handleDelete removes the campaign named by the id query parameter.
//
//	@Summary		Delete campaign
//	@Tags			campaigns
//	@Produce		json
//	@Param			id	query		int	true	"Campaign id"
//	@Success		200	{object}	MutationResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/campaigns [delete]
func (m *Module) handleDelete(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		writeCampaignError(w, http.StatusBadRequest, "Campaign ID is required")
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeCampaignError(w, http.StatusBadRequest, "Campaign ID is required")
		return
	}

	campaign, err := m.store.Delete(r.Context(), id)
	if err != nil {
		m.logger.Error("delete campaign failed", zap.Int64("id", id), zap.Error(err))
		writeCampaignError(w, http.StatusInternalServerError, "Failed to delete campaign")
		return
	}
	if campaign == nil {
		writeCampaignError(w, http.StatusNotFound, "Campaign not found")
		return
	}

	m.publish(r.Context(), TopicCampaignDeleted, campaign)
	writeCampaignJSON(w, http.StatusOK, MutationResponse{
		Success: true,
		Data:    *campaign,
		Message: "Campaign deleted successfully",
	})
}

func writeCampaignJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeCampaignError(w http.ResponseWriter, status int, message string) {
	writeCampaignJSON(w, status, ErrorResponse{Success: false, Error: message})
}
