package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d2dsearch/internal/model"
)

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings([]byte(`
problem: problems/d2d/random_data/6.5.1.txt
parameters: problems/d2d/config_parameter
energy_mode: nonlinear
drone_config: 1
seed: 42
tsp:
  population: 50
  mutation_rate: 0.2
`))
	require.NoError(t, err)
	assert.Equal(t, Nonlinear, s.Kind())
	assert.Equal(t, 1, s.DroneConfig)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 50, s.TSP.Population)
	assert.Equal(t, 0, s.TSP.Generations)
	require.NotNil(t, s.TSP.MutationRate)
	assert.Equal(t, 0.2, *s.TSP.MutationRate)
}

func TestParseSettings_MutationRate(t *testing.T) {
	s, err := ParseSettings([]byte("problem: a\nparameters: p\n"))
	require.NoError(t, err)
	assert.Nil(t, s.TSP.MutationRate, "absent key keeps the solver default")

	s, err = ParseSettings([]byte("problem: a\nparameters: p\ntsp:\n  mutation_rate: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, s.TSP.MutationRate)
	assert.Zero(t, *s.TSP.MutationRate, "explicit zero disables mutation")
}

func TestParseSettings_DefaultsToLinear(t *testing.T) {
	s, err := ParseSettings([]byte("problem: a.txt\nparameters: p\n"))
	require.NoError(t, err)
	assert.Equal(t, Linear, s.Kind())
}

func TestParseSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "no problem", yaml: "parameters: p\n"},
		{name: "bad mode", yaml: "problem: a\nparameters: p\nenergy_mode: steam\n"},
		{name: "bad mutation", yaml: "problem: a\nparameters: p\ntsp:\n  mutation_rate: 2\n"},
		{name: "negative mutation", yaml: "problem: a\nparameters: p\ntsp:\n  mutation_rate: -0.1\n"},
		{name: "negative index", yaml: "problem: a\nparameters: p\ndrone_config: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tt.yaml))
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func TestLoadService(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("TOUR_CACHE_TTL", "30s")
	t.Setenv("TOUR_CACHE_SIZE", "128")
	t.Setenv("RATE_RPS", "12.5")
	t.Setenv("EVAL_WORKERS", "3")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadService()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.TourCacheTTL)
	assert.Equal(t, 128, cfg.TourCacheSize)
	assert.Equal(t, 12.5, cfg.RateRPS)
	assert.Equal(t, 3, cfg.EvalWorkers)
	assert.NotNil(t, cfg.NewLogger())
}

func TestLoadService_InvalidCacheSize(t *testing.T) {
	t.Setenv("TOUR_CACHE_SIZE", "0")
	_, err := LoadService()
	assert.Error(t, err)
}

func TestLoadService_InvalidLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	_, err := LoadService()
	assert.Error(t, err)
}
