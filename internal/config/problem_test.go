package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d2dsearch/internal/model"
)

const sampleProblem = "Customers 3\n" +
	"number_drone 2\n" +
	"Coordinate X\tCoordinate Y\tDemand\tOnlyServicedByStaff\tServiceTimeByTruck(s)\tServiceTimeByDrone(s)\n" +
	"-1.5 2.0 0.1 0\t60 30\n" +
	"3.25 -4.0 0.2 1\t90 45\n" +
	"0.5 0.5 0.05 0\t30 15\n"

func TestParseProblem(t *testing.T) {
	p, err := ParseProblem(sampleProblem)
	require.NoError(t, err)

	assert.Equal(t, 3, p.CustomersCount)
	assert.Equal(t, 2, p.DronesCount)
	assert.Equal(t, 2, p.TechniciansCount)
	assert.Equal(t, []float64{0, -1.5, 3.25, 0.5}, p.X)
	assert.Equal(t, []float64{0, 2.0, -4.0, 0.5}, p.Y)
	assert.Equal(t, []bool{true, true, false, true}, p.Dronable)
	assert.Equal(t, []float64{0, 60, 90, 30}, p.TechnicianServiceTime)
	assert.Equal(t, []float64{0, 30, 45, 15}, p.DroneServiceTime)

	s := NewStore(nil)
	require.NoError(t, p.Import(s))
	assert.Equal(t, 4, s.Len())
}

func TestParseProblem_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing customers header", data: "number_drone 1\n"},
		{name: "missing drone header", data: "Customers 0\n"},
		{name: "row count mismatch", data: "Customers 2\nnumber_drone 1\n1 1 0.1 0\t1 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProblem(tt.data)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func TestLoadProblem_Name(t *testing.T) {
	path := filepath.Join(t.TempDir(), "6.5.1.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleProblem), 0o600))

	p, err := LoadProblem(path)
	require.NoError(t, err)
	assert.Equal(t, "6.5.1", p.Name)
}
