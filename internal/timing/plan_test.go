package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d2dsearch/internal/config"
	"d2dsearch/internal/model"
)

func TestEvaluate_ChainsDroneTrips(t *testing.T) {
	s := newStore(t)
	plan := model.Solution{
		TechnicianPaths: [][]int{{0, 2, 0}},
		DronePaths:      [][][]int{{{0, 1, 0}, {0, 1, 0}}},
	}

	ev, err := Evaluate(s, plan, config.Linear)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 300, 660}, ev.TechnicianArrivals[0], 1e-6)
	assert.InDeltaSlice(t, []float64{0, 25, 80}, ev.DroneArrivals[0][0], 1e-6)
	assert.InDeltaSlice(t, []float64{80, 105, 160}, ev.DroneArrivals[0][1], 1e-6)

	assert.InDelta(t, 660.0, ev.TechnicianTimespans[0], 1e-6)
	assert.InDelta(t, 160.0, ev.DroneTimespans[0], 1e-6)
	assert.InDelta(t, 300.0, ev.TechnicianWaitingTimes[0], 1e-6)
	assert.InDeltaSlice(t, []float64{25, 25}, ev.DroneWaitingTimes[0], 1e-6)

	assert.InDelta(t, 660.0, ev.Makespan, 1e-6)
	assert.InDelta(t, 350.0, ev.TotalWaiting, 1e-6)
}

func TestEvaluate_IdleDrone(t *testing.T) {
	s := newStore(t)
	ev, err := Evaluate(s, model.Solution{
		TechnicianPaths: [][]int{{0, 0}},
		DronePaths:      [][][]int{{}},
	}, config.Endurance)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ev.Makespan)
	assert.Equal(t, 0.0, ev.DroneTimespans[0])
}

func TestEvaluate_PropagatesErrors(t *testing.T) {
	s := newStore(t)
	_, err := Evaluate(s, model.Solution{TechnicianPaths: [][]int{{0, 7, 0}}}, config.Linear)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestFeasible(t *testing.T) {
	s := newStore(t)

	tests := []struct {
		name string
		plan model.Solution
		want bool
	}{
		{
			name: "every customer once",
			plan: model.Solution{TechnicianPaths: [][]int{{0, 2, 0}}, DronePaths: [][][]int{{{0, 1, 0}}}},
			want: true,
		},
		{
			name: "technician serves all",
			plan: model.Solution{TechnicianPaths: [][]int{{0, 2, 1, 0}}, DronePaths: [][][]int{{}}},
			want: true,
		},
		{
			name: "drone serves technician-only customer",
			plan: model.Solution{TechnicianPaths: [][]int{{0, 1, 0}}, DronePaths: [][][]int{{{0, 2, 0}}}},
			want: false,
		},
		{
			name: "served twice",
			plan: model.Solution{TechnicianPaths: [][]int{{0, 2, 1, 0}}, DronePaths: [][][]int{{{0, 1, 0}}}},
			want: false,
		},
		{
			name: "customer missing",
			plan: model.Solution{TechnicianPaths: [][]int{{0, 2, 0}}},
			want: false,
		},
		{
			name: "path not anchored",
			plan: model.Solution{TechnicianPaths: [][]int{{2, 1, 0}}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Feasible(s, tt.plan, config.Linear)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
