package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"d2dsearch/internal/model"
)

// Settings is the engine settings file: which problem to load, from which
// parameter directory, and how the solver should be tuned.
type Settings struct {
	Problem     string      `yaml:"problem"`
	Parameters  string      `yaml:"parameters"`
	EnergyMode  string      `yaml:"energy_mode"`
	DroneConfig int         `yaml:"drone_config"`
	Seed        int64       `yaml:"seed"`
	TSP         TSPSettings `yaml:"tsp"`
}

// TSPSettings overrides the genetic algorithm defaults. A zero population or
// generation count keeps the default. MutationRate is nil when the key is
// absent; an explicit 0 turns mutation off.
type TSPSettings struct {
	Population   int      `yaml:"population"`
	Generations  int      `yaml:"generations"`
	MutationRate *float64 `yaml:"mutation_rate"`
}

// LoadSettings reads a YAML settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes and validates YAML settings.
func ParseSettings(data []byte) (*Settings, error) {
	s := &Settings{EnergyMode: "linear"}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Validate checks field ranges.
func (s *Settings) Validate() error {
	if s.Problem == "" {
		return fmt.Errorf("problem is required: %w", model.ErrInvalidArgument)
	}
	if s.Parameters == "" {
		return fmt.Errorf("parameters is required: %w", model.ErrInvalidArgument)
	}
	if _, err := ParseEnergyMode(s.EnergyMode); err != nil {
		return err
	}
	if s.DroneConfig < 0 {
		return fmt.Errorf("drone_config must be non-negative: %w", model.ErrInvalidArgument)
	}
	if s.TSP.Population < 0 || s.TSP.Generations < 0 {
		return fmt.Errorf("tsp population and generations must be non-negative: %w", model.ErrInvalidArgument)
	}
	if r := s.TSP.MutationRate; r != nil && (*r < 0 || *r > 1) {
		return fmt.Errorf("tsp mutation_rate must be within [0, 1]: %w", model.ErrInvalidArgument)
	}
	return nil
}

// Kind is the drone variant selected by EnergyMode.
func (s *Settings) Kind() DroneKind {
	k, _ := ParseEnergyMode(s.EnergyMode)
	return k
}
