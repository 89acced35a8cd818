package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d2dsearch/internal/model"
)

func TestParseDroneKind(t *testing.T) {
	for tag, want := range []DroneKind{Linear, Nonlinear, Endurance} {
		got, err := ParseDroneKind(tag)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseDroneKind(3)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = ParseDroneKind(-1)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestParseEnergyMode(t *testing.T) {
	k, err := ParseEnergyMode(" Non-Linear ")
	require.NoError(t, err)
	assert.Equal(t, Nonlinear, k)

	_, err = ParseEnergyMode("diesel")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestLinearPower_SameInEveryPhase(t *testing.T) {
	m := DroneModel{Kind: Linear, Linear: &DroneLinearConfig{Beta: 2, Gamma: 10}}
	for _, fn := range []func(float64) (float64, error){m.TakeoffPower, m.LandingPower, m.CruisePower} {
		p, err := fn(3)
		require.NoError(t, err)
		assert.Equal(t, 16.0, p)
	}
}

func TestNonlinearPower(t *testing.T) {
	c := &DroneNonlinearConfig{
		DroneBase: DroneBase{TakeoffSpeed: 4, CruiseSpeed: 10, LandingSpeed: 2},
		K1:        0.8554, K2: 0.3051,
		C1: 2.8037, C2: 0.3177, C4: 0.0296, C5: 0.0279,
	}
	m := DroneModel{Kind: Nonlinear, Nonlinear: c}

	w := (1.5 + 1.0) * 9.8
	vertical := func(v float64) float64 {
		return c.K1*w*(v/2+math.Sqrt(v*v/4+w/(c.K2*c.K2))) + c.C2*math.Pow(w, 1.5)
	}

	takeoff, err := m.TakeoffPower(1)
	require.NoError(t, err)
	assert.InDelta(t, vertical(4), takeoff, 1e-9)

	landing, err := m.LandingPower(1)
	require.NoError(t, err)
	assert.InDelta(t, vertical(2), landing, 1e-9)
	assert.Greater(t, takeoff, landing)

	light, err := m.CruisePower(0)
	require.NoError(t, err)
	heavy, err := m.CruisePower(2)
	require.NoError(t, err)
	assert.Greater(t, heavy, light)
}

func TestEndurance_HasNoPowerFormula(t *testing.T) {
	m := DroneModel{Kind: Endurance, Endurance: &DroneEnduranceConfig{DroneSpeed: 10}}
	_, err := m.CruisePower(1)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = m.Base()
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestVerticalTime(t *testing.T) {
	b := DroneBase{TakeoffSpeed: 10, LandingSpeed: 5, Altitude: 50}
	assert.InDelta(t, 15.0, b.VerticalTime(), 1e-12)
}
