package campaigns

import (
	"context"
	"time"
)

// seedData returns the demo campaigns loaded into an empty store when
// seeding is enabled.
func seedData() []Campaign {
	return []Campaign{
		{
			Name:        "Summer Sale 2025",
			Status:      StatusActive,
			Budget:      15000,
			Spent:       12300,
			Conversions: 1247,
			ROI:         312,
			CreatedAt:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 7, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:        "Brand Awareness Q3",
			Status:      StatusActive,
			Budget:      25000,
			Spent:       18900,
			Conversions: 2156,
			ROI:         289,
			CreatedAt:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 7, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:        "Product Launch",
			Status:      StatusPaused,
			Budget:      30000,
			Spent:       22100,
			Conversions: 1823,
			ROI:         267,
			CreatedAt:   time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}

// seed loads the demo campaigns if the table is empty.
func (s *CampaignStore) seed(ctx context.Context) error {
	n, err := s.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for _, c := range seedData() {
		campaign := c
		if err := s.Insert(ctx, &campaign); err != nil {
			return err
		}
	}
	return nil
}
