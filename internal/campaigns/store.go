package campaigns

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Campaign statuses.
const (
	StatusActive    = "Active"
	StatusPaused    = "Paused"
	StatusCompleted = "Completed"
)

// Campaign represents one marketing campaign.
type Campaign struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Budget      float64   `json:"budget"`
	Spent       float64   `json:"spent"`
	Conversions int       `json:"conversions"`
	ROI         float64   `json:"roi"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateParams holds a partial update. Nil fields keep their current value.
type UpdateParams struct {
	Name        *string
	Status      *string
	Budget      *float64
	Spent       *float64
	Conversions *int
	ROI         *float64
}

// CampaignStore provides database access for the campaigns module.
type CampaignStore struct {
	db *sql.DB
}

// NewStore creates a CampaignStore backed by the given database.
func NewStore(db *sql.DB) *CampaignStore {
	return &CampaignStore{db: db}
}

// Insert creates a campaign and fills in its assigned id.
func (s *CampaignStore) Insert(ctx context.Context, c *Campaign) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO campaigns (
			name, status, budget, spent, conversions, roi, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Status, c.Budget, c.Spent, c.Conversions, c.ROI,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// Get returns a campaign by id. Returns nil, nil if not found.
func (s *CampaignStore) Get(ctx context.Context, id int64) (*Campaign, error) {
	var c Campaign
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, status, budget, spent, conversions, roi, created_at, updated_at
		FROM campaigns WHERE id = ?`,
		id,
	).Scan(
		&c.ID, &c.Name, &c.Status, &c.Budget, &c.Spent, &c.Conversions,
		&c.ROI, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return &c, nil
}

// List returns campaigns ordered by id, optionally filtered by status.
// The status filter is case-insensitive.
func (s *CampaignStore) List(ctx context.Context, status string) ([]Campaign, error) {
	query := `
		SELECT id, name, status, budget, spent, conversions, roi, created_at, updated_at
		FROM campaigns`
	args := []any{}
	if status != "" {
		query += " WHERE LOWER(status) = LOWER(?)"
		args = append(args, status)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	out := []Campaign{}
	for rows.Next() {
		var c Campaign
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Status, &c.Budget, &c.Spent, &c.Conversions,
			&c.ROI, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update applies a partial update and returns the updated campaign.
// Returns nil, nil if the campaign does not exist.
func (s *CampaignStore) Update(ctx context.Context, id int64, p UpdateParams) (*Campaign, error) {
	current, err := s.Get(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}

	if p.Name != nil {
		current.Name = *p.Name
	}
	if p.Status != nil {
		current.Status = *p.Status
	}
	if p.Budget != nil {
		current.Budget = *p.Budget
	}
	if p.Spent != nil {
		current.Spent = *p.Spent
	}
	if p.Conversions != nil {
		current.Conversions = *p.Conversions
	}
	if p.ROI != nil {
		current.ROI = *p.ROI
	}
	current.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE campaigns
		SET name = ?, status = ?, budget = ?, spent = ?, conversions = ?, roi = ?, updated_at = ?
		WHERE id = ?`,
		current.Name, current.Status, current.Budget, current.Spent,
		current.Conversions, current.ROI, current.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	return current, nil
}

// Delete removes a campaign and returns the deleted record.
// Returns nil, nil if the campaign does not exist.
func (s *CampaignStore) Delete(ctx context.Context, id int64) (*Campaign, error) {
	current, err := s.Get(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("delete campaign: %w", err)
	}
	return current, nil
}

// Count returns the number of campaigns.
func (s *CampaignStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM campaigns").Scan(&n); err != nil {
		return 0, fmt.Errorf("count campaigns: %w", err)
	}
	return n, nil
}
