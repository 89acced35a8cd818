package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d2dsearch/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(nil)
	require.NoError(t, s.ImportCustomers(
		[]float64{0, 3, 0, -4},
		[]float64{0, 0, 4, 0},
		[]float64{0, 1, 2, 3},
		[]bool{true, true, false, true},
		[]float64{0, 10, 20, 30},
		[]float64{0, 5, 6, 7},
	))
	return s
}

func TestImportCustomers_DistanceMatrix(t *testing.T) {
	s := newTestStore(t)
	require.Equal(t, 4, s.Len())

	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, 0.0, s.Distance(i, i))
		for j := 0; j < s.Len(); j++ {
			assert.Equal(t, s.Distance(i, j), s.Distance(j, i))
		}
	}
	assert.InDelta(t, 3.0, s.Distance(0, 1), 1e-6)
	assert.InDelta(t, 5.0, s.Distance(1, 2), 1e-6)
	assert.InDelta(t, 7.0, s.Distance(1, 3), 1e-6)
	assert.False(t, s.Customer(2).Dronable)
	assert.Equal(t, 30.0, s.Customer(3).DroneServiceTime)
}

func TestImportCustomers_MismatchLeavesStateAlone(t *testing.T) {
	s := newTestStore(t)

	err := s.ImportCustomers(
		[]float64{0, 1},
		[]float64{0, 1},
		[]float64{0},
		[]bool{true, true},
		[]float64{0, 0},
		[]float64{0, 0},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Equal(t, 4, s.Len())
	assert.InDelta(t, 5.0, s.Distance(1, 2), 1e-6)
}

func TestImportTruckConfig(t *testing.T) {
	s := NewStore(nil)
	_, err := s.Truck()
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	coefficients := []float64{0.7, 0.5}
	require.NoError(t, s.ImportTruckConfig(15.5, 1500, coefficients))
	coefficients[0] = 99

	truck, err := s.Truck()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.7, 0.5}, truck.Coefficients)
	assert.Equal(t, 1500.0, truck.MT)

	assert.ErrorIs(t, s.ImportTruckConfig(15.5, 0, nil), model.ErrInvalidArgument)
	assert.ErrorIs(t, s.ImportTruckConfig(0, 0, []float64{1}), model.ErrInvalidArgument)
}

func TestDrone_Lookup(t *testing.T) {
	s := NewStore(nil)
	_, err := s.Drone(Linear)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	base := DroneBase{TakeoffSpeed: 10, CruiseSpeed: 20, LandingSpeed: 5, Altitude: 50, Capacity: 2, Battery: 1e6}
	require.NoError(t, s.ImportDroneLinearConfig(base, 3, 100))
	require.NoError(t, s.ImportDroneEnduranceConfig(DroneEnduranceConfig{Capacity: 1, FixedTime: 600, FixedDistance: 5000, DroneSpeed: 10}))

	m, err := s.Drone(Linear)
	require.NoError(t, err)
	assert.Equal(t, Linear, m.Kind)
	assert.Equal(t, 2.0, m.Capacity())

	m, err = s.Drone(Endurance)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Capacity())

	_, err = s.Drone(Nonlinear)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = s.Drone(DroneKind(7))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestCheckPath(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.CheckPath([]int{0, 1, 2, 3, 0}))
	assert.ErrorIs(t, s.CheckPath([]int{0, 4, 0}), model.ErrInvalidArgument)
	assert.ErrorIs(t, s.CheckPath([]int{-1}), model.ErrInvalidArgument)
}
