package timing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d2dsearch/internal/config"
	"d2dsearch/internal/model"
)

// newStore builds a depot, a dronable customer 200 east and a
// technician-only customer 300 north.
func newStore(t *testing.T, coefficients ...float64) *config.Store {
	t.Helper()
	if len(coefficients) == 0 {
		coefficients = []float64{1}
	}
	s := config.NewStore(nil)
	require.NoError(t, s.ImportCustomers(
		[]float64{0, 200, 0},
		[]float64{0, 0, 300},
		[]float64{0, 0.5, 1},
		[]bool{true, true, false},
		[]float64{0, 30, 40},
		[]float64{0, 20, 60},
	))
	require.NoError(t, s.ImportTruckConfig(1, 1500, coefficients))
	require.NoError(t, s.ImportDroneLinearConfig(config.DroneBase{
		TakeoffSpeed: 10, CruiseSpeed: 20, LandingSpeed: 5, Altitude: 50, Capacity: 2, Battery: 1e6,
	}, 2, 10))
	require.NoError(t, s.ImportDroneNonlinearConfig(config.DroneBase{
		TakeoffSpeed: 10, CruiseSpeed: 20, LandingSpeed: 5, Altitude: 50, Capacity: 2, Battery: 1e9,
	}, 0.8554, 0.3051, 2.8037, 0.3177, 0.0296, 0.0279))
	require.NoError(t, s.ImportDroneEnduranceConfig(config.DroneEnduranceConfig{
		Capacity: 2, FixedTime: 40, FixedDistance: 400, DroneSpeed: 10,
	}))
	return s
}

func TestDroneArrivalTimestamps_Linear(t *testing.T) {
	s := newStore(t)
	got, err := DroneArrivalTimestamps(s, []int{0, 1, 1, 0}, config.Linear, 100)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100, 125, 125, 180}, got, 1e-9)
}

func TestDroneArrivalTimestamps_SelfLoopIsFree(t *testing.T) {
	s := newStore(t)
	for _, kind := range []config.DroneKind{config.Linear, config.Nonlinear, config.Endurance} {
		got, err := DroneArrivalTimestamps(s, []int{0, 0, 0}, kind, 7)
		require.NoError(t, err)
		assert.Equal(t, []float64{7, 7, 7}, got, kind.String())
	}
}

func TestDroneArrivalTimestamps_Endurance(t *testing.T) {
	s := newStore(t)
	got, err := DroneArrivalTimestamps(s, []int{0, 1, 0}, config.Endurance, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 20, 40}, got, 1e-9)
}

func TestDroneArrivalTimestamps_Errors(t *testing.T) {
	s := newStore(t)
	_, err := DroneArrivalTimestamps(s, []int{0, 1, 0}, config.DroneKind(5), 0)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = DroneArrivalTimestamps(s, []int{0, 9, 0}, config.Linear, 0)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	got, err := DroneArrivalTimestamps(s, nil, config.Linear, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTechnicianArrivalTimestamps_UnitSpeed(t *testing.T) {
	s := newStore(t)
	got, err := TechnicianArrivalTimestamps(s, []int{0, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 200}, got, 1e-9)
}

func TestTechnicianArrivalTimestamps_EdgeSpansHours(t *testing.T) {
	s := config.NewStore(nil)
	require.NoError(t, s.ImportCustomers(
		[]float64{0, 5400}, []float64{0, 0}, []float64{0, 0},
		[]bool{true, true}, []float64{0, 0}, []float64{0, 0},
	))
	require.NoError(t, s.ImportTruckConfig(1, 0, []float64{1, 0.5}))

	got, err := TechnicianArrivalTimestamps(s, []int{0, 1})
	require.NoError(t, err)
	// 3600 units in the first hour, the remaining 1800 at half speed.
	assert.InDeltaSlice(t, []float64{0, 7200}, got, 1e-6)
}

func TestTechnicianArrivalTimestamps_ServiceAdvancesHour(t *testing.T) {
	s := config.NewStore(nil)
	require.NoError(t, s.ImportCustomers(
		[]float64{0, 100}, []float64{0, 0}, []float64{0, 0},
		[]bool{true, true}, []float64{0, 0}, []float64{0, 3600},
	))
	require.NoError(t, s.ImportTruckConfig(1, 0, []float64{1, 0.5}))

	got, err := TechnicianArrivalTimestamps(s, []int{0, 1, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 100, 3900}, got, 1e-6)
}

func TestArrivalTimestamps_NonDecreasing(t *testing.T) {
	s := newStore(t, 0.7, 0.4, 0.6)
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		path := []int{0}
		for i := 0; i < 6; i++ {
			path = append(path, rng.Intn(s.Len()))
		}
		path = append(path, 0)

		tech, err := TechnicianArrivalTimestamps(s, path)
		require.NoError(t, err)
		require.Len(t, tech, len(path))
		for i := 1; i < len(tech); i++ {
			assert.GreaterOrEqual(t, tech[i], tech[i-1])
		}

		for _, kind := range []config.DroneKind{config.Linear, config.Nonlinear, config.Endurance} {
			drone, err := DroneArrivalTimestamps(s, path, kind, 0)
			require.NoError(t, err)
			require.Len(t, drone, len(path))
			for i := 1; i < len(drone); i++ {
				assert.GreaterOrEqual(t, drone[i], drone[i-1])
			}
		}
	}
}

func TestTotalWaitingTime(t *testing.T) {
	s := newStore(t)

	w, err := DroneTotalWaitingTime(s, []int{0, 1, 0}, []float64{100, 125, 180})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, w, 1e-9)

	w, err = TechnicianTotalWaitingTime(s, []int{0, 2, 0}, []float64{0, 300, 660})
	require.NoError(t, err)
	assert.InDelta(t, 300.0, w, 1e-9)

	w, err = DroneTotalWaitingTime(s, []int{0, 0}, []float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, w)

	_, err = TechnicianTotalWaitingTime(s, []int{0, 1, 0}, []float64{0, 1})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestDroneEnergyConsumption_Linear(t *testing.T) {
	s := newStore(t)
	// Outbound at 10 W for 5+10+10 s, return at 11 W after picking up 0.5.
	e, err := DroneEnergyConsumption(s, []int{0, 1, 0}, config.Linear)
	require.NoError(t, err)
	assert.InDelta(t, 525.0, e, 1e-9)

	_, err = DroneEnergyConsumption(s, []int{0, 1, 0}, config.Endurance)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestTripFeasible(t *testing.T) {
	s := newStore(t)

	tests := []struct {
		name string
		path []int
		kind config.DroneKind
		want bool
	}{
		{name: "linear ok", path: []int{0, 1, 0}, kind: config.Linear, want: true},
		{name: "over capacity", path: []int{0, 1, 2, 1, 2, 0}, kind: config.Linear, want: false},
		{name: "not anchored", path: []int{1, 0}, kind: config.Linear, want: false},
		{name: "endurance within budget", path: []int{0, 1, 0}, kind: config.Endurance, want: true},
		{name: "endurance over budget", path: []int{0, 1, 0, 1, 0}, kind: config.Endurance, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TripFeasible(s, tt.path, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTripFeasible_Battery(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ImportDroneLinearConfig(config.DroneBase{
		TakeoffSpeed: 10, CruiseSpeed: 20, LandingSpeed: 5, Altitude: 50, Capacity: 2, Battery: 500,
	}, 2, 10))
	ok, err := TripFeasible(s, []int{0, 1, 0}, config.Linear)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFlightDurationAndWeight(t *testing.T) {
	s := newStore(t)
	assert.Equal(t, 80.0, FlightDuration([]float64{100, 125, 180}))
	assert.Equal(t, 0.0, FlightDuration(nil))
	assert.Equal(t, 1.5, TotalWeight(s, []int{0, 1, 2, 0}))
	assert.InDelta(t, 400.0, PathDistance(s, []int{0, 1, 0}), 1e-6)
}
