package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/infra/postgres"
)

// ActivityRepository tracks daily mission outcomes of web users.
type ActivityRepository struct {
	db postgres.DBTX
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db postgres.DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Track merges the outcome into the user's record for the day the way
// entities.DailyActivity.Merge does.
func (r *ActivityRepository) Track(ctx context.Context, a entities.DailyActivity) error {
	query := `
		INSERT INTO daily_activity (email, day, mission_completed, mission_skipped, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email, day) DO UPDATE
		SET mission_completed = daily_activity.mission_completed OR EXCLUDED.mission_completed,
		    mission_skipped = NOT (daily_activity.mission_completed OR EXCLUDED.mission_completed)
		        AND (daily_activity.mission_skipped OR EXCLUDED.mission_skipped),
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query, a.Email, a.Day, a.MissionCompleted, a.MissionSkipped, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("track activity: %w", err)
	}

	return nil
}
