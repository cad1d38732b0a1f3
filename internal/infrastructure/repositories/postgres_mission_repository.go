package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"crop-survey-system/internal/domain"
	"crop-survey-system/pkg/planner"
)

// PostgresMissionRepository імплементує MissionRepository для PostgreSQL
type PostgresMissionRepository struct {
	db *sql.DB
}

// NewPostgresMissionRepository створює новий екземпляр PostgresMissionRepository
func NewPostgresMissionRepository(db *sql.DB) *PostgresMissionRepository {
	return &PostgresMissionRepository{
		db: db,
	}
}

// Save зберігає нову місію. Повний план польоту пакується в JSONB,
// ключові показники дублюються в колонках для фільтрації.
func (r *PostgresMissionRepository) Save(ctx context.Context, mission *domain.Mission) error {
	query := `
		INSERT INTO missions (id, field_id, status, plan, is_feasible, battery_pct, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	planJSON, err := json.Marshal(mission.Mission)
	if err != nil {
		return fmt.Errorf("failed to marshal mission plan: %w", err)
	}

	_, err = r.db.ExecContext(
		ctx,
		query,
		mission.ID,
		mission.FieldID,
		mission.Status,
		planJSON,
		mission.IsFeasible,
		mission.EstimatedBatteryPct,
		mission.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save mission: %w", err)
	}

	return nil
}

// FindByID знаходить місію за ID
func (r *PostgresMissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	query := `
		SELECT id, field_id, status, plan, created_at
		FROM missions
		WHERE id = $1
	`

	var mission domain.Mission
	var planJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&mission.ID,
		&mission.FieldID,
		&mission.Status,
		&planJSON,
		&mission.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("mission not found: %w", sql.ErrNoRows)
		}
		return nil, fmt.Errorf("failed to find mission: %w", err)
	}

	var plan planner.Mission
	if err := json.Unmarshal(planJSON, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mission plan: %w", err)
	}
	mission.Mission = plan

	return &mission, nil
}

// FindByFieldID повертає всі місії для заданого поля
func (r *PostgresMissionRepository) FindByFieldID(ctx context.Context, fieldID uuid.UUID) ([]*domain.Mission, error) {
	query := `
		SELECT id, field_id, status, plan, created_at
		FROM missions
		WHERE field_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, fieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to query missions: %w", err)
	}
	defer rows.Close()

	var missions []*domain.Mission
	for rows.Next() {
		var mission domain.Mission
		var planJSON []byte

		err := rows.Scan(
			&mission.ID,
			&mission.FieldID,
			&mission.Status,
			&planJSON,
			&mission.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission row: %w", err)
		}

		var plan planner.Mission
		if err := json.Unmarshal(planJSON, &plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mission plan: %w", err)
		}
		mission.Mission = plan

		missions = append(missions, &mission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mission rows: %w", err)
	}

	return missions, nil
}

// UpdateStatus оновлює статус місії
func (r *PostgresMissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MissionStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE missions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update mission status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("mission not found: %w", sql.ErrNoRows)
	}

	return nil
}

// Delete видаляє місію за ID
func (r *PostgresMissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("mission not found: %w", sql.ErrNoRows)
	}

	return nil
}
