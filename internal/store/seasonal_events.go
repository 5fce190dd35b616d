package store

import (
	"context"

	"inventory-service/internal/models"
)

// CreateSeasonalEvent creates a seasonal event
func (s *Store) CreateSeasonalEvent(ctx context.Context, ev *models.SeasonalEvent) error {
	if err := models.Validate(ev); err != nil {
		return err
	}

	query := `
		INSERT INTO seasonal_events (start_date, end_date, name)
		VALUES ($1, $2, $3)
		RETURNING id`

	return classify(s.q.GetContext(ctx, &ev.ID, query, ev.StartDate, ev.EndDate, ev.Name))
}

// GetSeasonalEventByID retrieves a seasonal event by ID
func (s *Store) GetSeasonalEventByID(ctx context.Context, id int64) (*models.SeasonalEvent, error) {
	var ev models.SeasonalEvent
	err := s.q.GetContext(ctx, &ev, "SELECT * FROM seasonal_events WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err, "seasonal event", id)
	}
	return &ev, nil
}

// ListSeasonalEvents retrieves all seasonal events, latest first
func (s *Store) ListSeasonalEvents(ctx context.Context) ([]models.SeasonalEvent, error) {
	events := []models.SeasonalEvent{}
	err := s.q.SelectContext(ctx, &events, "SELECT * FROM seasonal_events ORDER BY start_date DESC, id")
	return events, err
}

// UpdateSeasonalEvent updates a seasonal event
func (s *Store) UpdateSeasonalEvent(ctx context.Context, ev *models.SeasonalEvent) error {
	if err := models.Validate(ev); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		"UPDATE seasonal_events SET start_date = $1, end_date = $2, name = $3 WHERE id = $4",
		ev.StartDate, ev.EndDate, ev.Name, ev.ID)
	if err != nil {
		return classify(err)
	}
	return checkAffected(res, "seasonal event", ev.ID)
}

// DeleteSeasonalEvent deletes a seasonal event; products in it lose their reference
func (s *Store) DeleteSeasonalEvent(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "seasonal_events", "seasonal event", id)
}
