package planner

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFieldSmall(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())

	boundary := orb.Ring{{0, 0}, {20, 0}, {20, 15}, {0, 15}}
	result := pl.ValidateField(boundary, 2.0, 0.3)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
	assert.InDelta(t, 300.0, result.FieldAreaSqm, 1e-6)
	assert.InDelta(t, 12.5, result.MaxDistanceFromCenterM, 1e-6)
}

func TestValidateFieldLarge(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())

	boundary := orb.Ring{{0, 0}, {500, 0}, {500, 500}, {0, 500}}
	result := pl.ValidateField(boundary, 2.0, 0.3)

	assert.False(t, result.Valid)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "link range limit")
	assert.Contains(t, result.Warnings[1], "battery cycles")
	assert.InDelta(t, 250000.0, result.FieldAreaSqm, 1e-3)
}
