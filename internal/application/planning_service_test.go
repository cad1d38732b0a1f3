package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crop-survey-system/internal/domain"
	"crop-survey-system/pkg/planner"
)

type fakeFieldRepo struct {
	fields map[uuid.UUID]*domain.Field
}

func newFakeFieldRepo() *fakeFieldRepo {
	return &fakeFieldRepo{fields: make(map[uuid.UUID]*domain.Field)}
}

func (r *fakeFieldRepo) Save(ctx context.Context, field *domain.Field) error {
	r.fields[field.ID] = field
	return nil
}

func (r *fakeFieldRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Field, error) {
	field, ok := r.fields[id]
	if !ok {
		return nil, fmt.Errorf("field %s not found", id)
	}
	return field, nil
}

func (r *fakeFieldRepo) FindAll(ctx context.Context) ([]*domain.Field, error) {
	var all []*domain.Field
	for _, f := range r.fields {
		all = append(all, f)
	}
	return all, nil
}

func (r *fakeFieldRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.fields, id)
	return nil
}

type fakeMissionRepo struct {
	missions map[uuid.UUID]*domain.Mission
}

func newFakeMissionRepo() *fakeMissionRepo {
	return &fakeMissionRepo{missions: make(map[uuid.UUID]*domain.Mission)}
}

func (r *fakeMissionRepo) Save(ctx context.Context, mission *domain.Mission) error {
	r.missions[mission.ID] = mission
	return nil
}

func (r *fakeMissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	mission, ok := r.missions[id]
	if !ok {
		return nil, fmt.Errorf("mission %s not found", id)
	}
	return mission, nil
}

func (r *fakeMissionRepo) FindByFieldID(ctx context.Context, fieldID uuid.UUID) ([]*domain.Mission, error) {
	var result []*domain.Mission
	for _, m := range r.missions {
		if m.FieldID == fieldID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeMissionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MissionStatus) error {
	mission, ok := r.missions[id]
	if !ok {
		return fmt.Errorf("mission %s not found", id)
	}
	mission.Status = status
	return nil
}

func (r *fakeMissionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.missions, id)
	return nil
}

type fakeStorage struct {
	artifacts map[uuid.UUID][]byte
	media     map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		artifacts: make(map[uuid.UUID][]byte),
		media:     make(map[string][]byte),
	}
}

func (s *fakeStorage) InitializeDatabase() error { return nil }

func (s *fakeStorage) SavePlanArtifact(ctx context.Context, missionID uuid.UUID, plan []byte) (string, error) {
	s.artifacts[missionID] = plan
	return fmt.Sprintf("missions/%s/flight_plan.json", missionID), nil
}

func (s *fakeStorage) GetPlanArtifact(ctx context.Context, missionID uuid.UUID) (io.ReadCloser, error) {
	data, ok := s.artifacts[missionID]
	if !ok {
		return nil, fmt.Errorf("artifact for mission %s not found", missionID)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) SaveMedia(ctx context.Context, fieldID uuid.UUID, filename, contentType string, data io.Reader, size int64) (string, error) {
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("media/%s/%s", fieldID, filename)
	s.media[key] = body
	return key, nil
}

func (s *fakeStorage) GetMedia(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	data, ok := s.media[objectKey]
	if !ok {
		return nil, fmt.Errorf("media %s not found", objectKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) ListMediaKeys(ctx context.Context, fieldID uuid.UUID) ([]string, error) {
	prefix := fmt.Sprintf("media/%s/", fieldID)
	var keys []string
	for key := range s.media {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func newTestPlanningService() (*PlanningService, *fakeFieldRepo, *fakeMissionRepo, *fakeStorage) {
	fieldRepo := newFakeFieldRepo()
	missionRepo := newFakeMissionRepo()
	storage := newFakeStorage()
	pl := planner.NewPlanner(planner.DefaultTelloProfile())
	return NewPlanningService(fieldRepo, missionRepo, storage, pl), fieldRepo, missionRepo, storage
}

func testField() *domain.Field {
	return &domain.Field{
		ID:        uuid.New(),
		Name:      "Back Field",
		Boundary:  orb.Ring{{0, 0}, {20, 0}, {20, 15}, {0, 15}},
		CreatedAt: time.Now(),
	}
}

func TestPlanMissionsSavesMissionAndArtifact(t *testing.T) {
	service, fieldRepo, missionRepo, _ := newTestPlanningService()
	ctx := context.Background()

	field := testField()
	require.NoError(t, fieldRepo.Save(ctx, field))

	missions, err := service.PlanMissions(ctx, field.ID, PlanRequest{
		AltitudeM:       2.0,
		OverlapFraction: 0.3,
	})
	require.NoError(t, err)
	require.Len(t, missions, 1)

	mission := missions[0]
	assert.Equal(t, field.ID, mission.FieldID)
	assert.Equal(t, domain.MissionStatusPlanned, mission.Status)
	assert.NotEqual(t, uuid.Nil, mission.ID)
	assert.True(t, mission.IsFeasible)

	// Місія збережена в репозиторії.
	saved, err := missionRepo.FindByID(ctx, mission.ID)
	require.NoError(t, err)
	assert.Equal(t, mission.ID, saved.ID)

	// Артефакт плану збережений і розбирається назад у той самий план.
	reader, err := service.GetPlanArtifact(ctx, mission.ID)
	require.NoError(t, err)
	defer reader.Close()

	var plan planner.Mission
	require.NoError(t, json.NewDecoder(reader).Decode(&plan))
	assert.Equal(t, mission.Mission, plan)
}

func TestPlanMissionsAdaptiveSplitsField(t *testing.T) {
	service, fieldRepo, _, _ := newTestPlanningService()
	ctx := context.Background()

	field := testField()
	field.Boundary = orb.Ring{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	require.NoError(t, fieldRepo.Save(ctx, field))

	missions, err := service.PlanMissions(ctx, field.ID, PlanRequest{
		AltitudeM:       2.0,
		OverlapFraction: 0.3,
		Adaptive:        true,
	})
	require.NoError(t, err)
	require.Len(t, missions, 2)

	for _, mission := range missions {
		assert.Equal(t, field.ID, mission.FieldID)
		assert.Equal(t, domain.MissionStatusPlanned, mission.Status)
	}

	listed, err := service.ListMissionsByField(ctx, field.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestPlanMissionsUnknownField(t *testing.T) {
	service, _, _, _ := newTestPlanningService()

	_, err := service.PlanMissions(context.Background(), uuid.New(), PlanRequest{
		AltitudeM:       2.0,
		OverlapFraction: 0.3,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field not found")
}

func TestPlanMissionsInvalidConfig(t *testing.T) {
	service, fieldRepo, _, _ := newTestPlanningService()
	ctx := context.Background()

	field := testField()
	require.NoError(t, fieldRepo.Save(ctx, field))

	_, err := service.PlanMissions(ctx, field.ID, PlanRequest{AltitudeM: 0, OverlapFraction: 0.3})

	var configErr *planner.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "altitude_m", configErr.Field)
}

func TestUpdateMissionStatus(t *testing.T) {
	service, fieldRepo, missionRepo, _ := newTestPlanningService()
	ctx := context.Background()

	field := testField()
	require.NoError(t, fieldRepo.Save(ctx, field))

	missions, err := service.PlanMissions(ctx, field.ID, PlanRequest{AltitudeM: 2.0, OverlapFraction: 0.3})
	require.NoError(t, err)

	id := missions[0].ID
	require.NoError(t, service.UpdateMissionStatus(ctx, id, domain.MissionStatusActive))

	updated, err := missionRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.MissionStatusActive, updated.Status)

	err = service.UpdateMissionStatus(ctx, id, domain.MissionStatus("broken"))
	require.Error(t, err)
}
