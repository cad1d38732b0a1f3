package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"crop-survey-system/internal/domain"
	"crop-survey-system/pkg/planner"
)

// PostgresFieldRepository імплементує FieldRepository для PostgreSQL
type PostgresFieldRepository struct {
	db *sql.DB
}

// NewPostgresFieldRepository створює новий екземпляр PostgresFieldRepository
func NewPostgresFieldRepository(db *sql.DB) *PostgresFieldRepository {
	return &PostgresFieldRepository{
		db: db,
	}
}

// Save зберігає нове поле. Межа зберігається як GeoJSON-полігон,
// перешкоди та безпольотні зони — як JSONB.
func (r *PostgresFieldRepository) Save(ctx context.Context, field *domain.Field) error {
	query := `
		INSERT INTO fields (id, name, boundary, obstacles, no_fly_zones, reference_point, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	boundaryJSON, err := json.Marshal(geojson.NewGeometry(orb.Polygon{field.Boundary}))
	if err != nil {
		return fmt.Errorf("failed to marshal boundary: %w", err)
	}

	obstaclesJSON, err := json.Marshal(field.Obstacles)
	if err != nil {
		return fmt.Errorf("failed to marshal obstacles: %w", err)
	}

	noFlyJSON, err := json.Marshal(field.NoFlyZones)
	if err != nil {
		return fmt.Errorf("failed to marshal no-fly zones: %w", err)
	}

	var referenceJSON []byte
	if field.Reference != nil {
		referenceJSON, err = json.Marshal(field.Reference)
		if err != nil {
			return fmt.Errorf("failed to marshal reference point: %w", err)
		}
	}

	_, err = r.db.ExecContext(
		ctx,
		query,
		field.ID,
		field.Name,
		boundaryJSON,
		obstaclesJSON,
		noFlyJSON,
		referenceJSON,
		field.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save field: %w", err)
	}

	return nil
}

// FindByID знаходить поле за ID
func (r *PostgresFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Field, error) {
	query := `
		SELECT id, name, boundary, obstacles, no_fly_zones, reference_point, created_at
		FROM fields
		WHERE id = $1
	`

	field, err := r.scanField(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("field not found: %w", sql.ErrNoRows)
		}
		return nil, fmt.Errorf("failed to find field: %w", err)
	}

	return field, nil
}

// FindAll повертає всі збережені поля
func (r *PostgresFieldRepository) FindAll(ctx context.Context) ([]*domain.Field, error) {
	query := `
		SELECT id, name, boundary, obstacles, no_fly_zones, reference_point, created_at
		FROM fields
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	var fields []*domain.Field
	for rows.Next() {
		field, err := r.scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field row: %w", err)
		}
		fields = append(fields, field)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating field rows: %w", err)
	}

	return fields, nil
}

// Delete видаляє поле за ID
func (r *PostgresFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fields WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete field: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("field not found: %w", sql.ErrNoRows)
	}

	return nil
}

// rowScanner охоплює *sql.Row та *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanField читає один рядок таблиці fields у доменну модель
func (r *PostgresFieldRepository) scanField(row rowScanner) (*domain.Field, error) {
	var field domain.Field
	var boundaryJSON, obstaclesJSON, noFlyJSON, referenceJSON []byte

	err := row.Scan(
		&field.ID,
		&field.Name,
		&boundaryJSON,
		&obstaclesJSON,
		&noFlyJSON,
		&referenceJSON,
		&field.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	boundary, err := geojson.UnmarshalGeometry(boundaryJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal boundary: %w", err)
	}
	polygon, ok := boundary.Geometry().(orb.Polygon)
	if !ok || len(polygon) == 0 {
		return nil, errors.New("field boundary is not a polygon")
	}
	field.Boundary = polygon[0]

	if len(obstaclesJSON) > 0 {
		var obstacles []planner.Obstacle
		if err := json.Unmarshal(obstaclesJSON, &obstacles); err != nil {
			return nil, fmt.Errorf("failed to unmarshal obstacles: %w", err)
		}
		field.Obstacles = obstacles
	}

	if len(noFlyJSON) > 0 {
		var noFly []orb.Ring
		if err := json.Unmarshal(noFlyJSON, &noFly); err != nil {
			return nil, fmt.Errorf("failed to unmarshal no-fly zones: %w", err)
		}
		field.NoFlyZones = noFly
	}

	if len(referenceJSON) > 0 {
		var reference planner.GeoReference
		if err := json.Unmarshal(referenceJSON, &reference); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reference point: %w", err)
		}
		field.Reference = &reference
	}

	return &field, nil
}
