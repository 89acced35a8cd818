package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d2dsearch/internal/config"
	"d2dsearch/internal/model"
	"d2dsearch/internal/timing"
)

func newStore(t *testing.T) *config.Store {
	t.Helper()
	s := config.NewStore(nil)
	require.NoError(t, s.ImportCustomers(
		[]float64{0, 10, 0, 20, -10},
		[]float64{0, 0, 10, 0, 0},
		[]float64{0, 0.5, 1, 0.5, 1.5},
		[]bool{true, true, false, true, true},
		[]float64{0, 10, 10, 10, 10},
		[]float64{0, 60, 60, 60, 60},
	))
	require.NoError(t, s.ImportTruckConfig(10, 0, []float64{1}))
	require.NoError(t, s.ImportDroneLinearConfig(config.DroneBase{
		TakeoffSpeed: 10, CruiseSpeed: 20, LandingSpeed: 5, Altitude: 50, Capacity: 2, Battery: 1e9,
	}, 2, 10))
	return s
}

func TestInitial_SplitsOverflowToTechnician(t *testing.T) {
	s := newStore(t)
	plan, err := Initial(s, 1, 1, config.Linear)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{0, 2, 4, 0}}, plan.TechnicianPaths)
	assert.Equal(t, [][][]int{{{0, 1, 3, 0}}}, plan.DronePaths)

	ok, err := timing.Feasible(s, plan, config.Linear)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInitial_NoDrones(t *testing.T) {
	s := newStore(t)
	plan, err := Initial(s, 2, 0, config.Linear)
	require.NoError(t, err)
	assert.Len(t, plan.TechnicianPaths, 2)
	assert.Empty(t, plan.DronePaths)

	ok, err := timing.Feasible(s, plan, config.Linear)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInitial_Errors(t *testing.T) {
	s := newStore(t)

	_, err := Initial(s, 0, 1, config.Linear)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = Initial(s, 1, 1, config.Nonlinear)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "nonlinear config was never imported")

	_, err = Initial(s, -1, 1, config.Linear)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}
