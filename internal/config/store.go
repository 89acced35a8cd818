// Package config holds the problem configuration: truck speed profile, the
// drone model variants and the imported customers with their distance matrix.
//
// A Store is built once per process (or per test) and then shared read-only.
// Import methods are not safe for concurrent use with each other or with any
// reader; finish every import before handing the Store to workers.
package config

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"d2dsearch/internal/model"
	"d2dsearch/internal/numeric"
)

// TruckConfig is the technician vehicle's speed profile. Coefficients are
// hourly multipliers on MaximumVelocity applied cyclically. MT is carried
// through untouched for downstream consumers.
type TruckConfig struct {
	MaximumVelocity float64
	MT              float64
	Coefficients    []float64
}

// Store is the configuration context passed to every engine call.
type Store struct {
	log *logrus.Logger

	truck     *TruckConfig
	linear    *DroneLinearConfig
	nonlinear *DroneNonlinearConfig
	endurance *DroneEnduranceConfig

	customers []model.Customer
	distances [][]float64
}

// NewStore returns an empty store. A nil logger discards debug output.
func NewStore(log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Store{log: log}
}

// ImportTruckConfig replaces the active truck configuration.
func (s *Store) ImportTruckConfig(maximumVelocity, mT float64, coefficients []float64) error {
	if len(coefficients) == 0 {
		return fmt.Errorf("import truck config: coefficients must not be empty: %w", model.ErrInvalidArgument)
	}
	if maximumVelocity <= 0 {
		return fmt.Errorf("import truck config: maximum_velocity must be positive, got %g: %w", maximumVelocity, model.ErrInvalidArgument)
	}
	for i, c := range coefficients {
		if c <= 0 {
			return fmt.Errorf("import truck config: coefficient %d must be positive, got %g: %w", i, c, model.ErrInvalidArgument)
		}
	}
	s.log.WithField("coefficients", len(coefficients)).Debug("importing truck config")
	s.truck = &TruckConfig{
		MaximumVelocity: maximumVelocity,
		MT:              mT,
		Coefficients:    append([]float64(nil), coefficients...),
	}
	return nil
}

// ImportDroneLinearConfig replaces the active linear drone configuration.
func (s *Store) ImportDroneLinearConfig(base DroneBase, beta, gamma float64) error {
	if err := validateBase(base); err != nil {
		return fmt.Errorf("import drone linear config: %w", err)
	}
	s.log.WithField("speed_type", base.SpeedType).WithField("range", base.Range).Debug("importing drone linear config")
	s.linear = &DroneLinearConfig{DroneBase: base, Beta: beta, Gamma: gamma}
	return nil
}

// ImportDroneNonlinearConfig replaces the active nonlinear drone configuration.
func (s *Store) ImportDroneNonlinearConfig(base DroneBase, k1, k2, c1, c2, c4, c5 float64) error {
	if err := validateBase(base); err != nil {
		return fmt.Errorf("import drone nonlinear config: %w", err)
	}
	if k2 == 0 {
		return fmt.Errorf("import drone nonlinear config: k2 must be non-zero: %w", model.ErrInvalidArgument)
	}
	s.log.WithField("speed_type", base.SpeedType).WithField("range", base.Range).Debug("importing drone nonlinear config")
	s.nonlinear = &DroneNonlinearConfig{DroneBase: base, K1: k1, K2: k2, C1: c1, C2: c2, C4: c4, C5: c5}
	return nil
}

// ImportDroneEnduranceConfig replaces the active endurance drone configuration.
func (s *Store) ImportDroneEnduranceConfig(c DroneEnduranceConfig) error {
	if c.DroneSpeed <= 0 {
		return fmt.Errorf("import drone endurance config: drone_speed must be positive, got %g: %w", c.DroneSpeed, model.ErrInvalidArgument)
	}
	s.log.WithField("speed_type", c.SpeedType).WithField("range", c.Range).Debug("importing drone endurance config")
	cp := c
	s.endurance = &cp
	return nil
}

// ImportCustomers replaces the customer set and recomputes the distance
// matrix. Nothing is modified unless every array has the same length.
func (s *Store) ImportCustomers(x, y, demands []float64, dronable []bool, droneServiceTime, technicianServiceTime []float64) error {
	n := len(x)
	if len(y) != n || len(demands) != n || len(dronable) != n || len(droneServiceTime) != n || len(technicianServiceTime) != n {
		return fmt.Errorf(
			"import customers: all arrays must have the same size (x=%d y=%d demands=%d dronable=%d drone_service_time=%d technician_service_time=%d): %w",
			n, len(y), len(demands), len(dronable), len(droneServiceTime), len(technicianServiceTime), model.ErrInvalidArgument,
		)
	}

	customers := make([]model.Customer, n)
	for i := 0; i < n; i++ {
		customers[i] = model.Customer{
			X:                     x[i],
			Y:                     y[i],
			Demand:                demands[i],
			Dronable:              dronable[i],
			DroneServiceTime:      droneServiceTime[i],
			TechnicianServiceTime: technicianServiceTime[i],
		}
	}

	distances := make([][]float64, n)
	for i := range distances {
		distances[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d, err := numeric.Sqrt(numeric.Sqr(x[i]-x[j]) + numeric.Sqr(y[i]-y[j]))
			if err != nil {
				return fmt.Errorf("import customers: distance %d-%d: %w", i, j, err)
			}
			distances[i][j], distances[j][i] = d, d
		}
	}

	s.log.WithField("customers", n).Debug("importing customers")
	s.customers, s.distances = customers, distances
	return nil
}

// Truck returns the active truck configuration.
func (s *Store) Truck() (*TruckConfig, error) {
	if s.truck == nil {
		return nil, fmt.Errorf("truck config not imported: %w", model.ErrInvalidArgument)
	}
	return s.truck, nil
}

// Drone returns the active configuration for kind as a tagged variant.
func (s *Store) Drone(kind DroneKind) (DroneModel, error) {
	m := DroneModel{Kind: kind}
	switch kind {
	case Linear:
		m.Linear = s.linear
		if m.Linear == nil {
			return m, notImported(kind)
		}
	case Nonlinear:
		m.Nonlinear = s.nonlinear
		if m.Nonlinear == nil {
			return m, notImported(kind)
		}
	case Endurance:
		m.Endurance = s.endurance
		if m.Endurance == nil {
			return m, notImported(kind)
		}
	default:
		return m, fmt.Errorf("invalid config_type = %d: %w", int(kind), model.ErrInvalidArgument)
	}
	return m, nil
}

// Len is the number of imported customers, depot included.
func (s *Store) Len() int { return len(s.customers) }

// Customer returns customer i. The index must be in range.
func (s *Store) Customer(i int) model.Customer { return s.customers[i] }

// Distance returns the Euclidean distance between customers i and j.
func (s *Store) Distance(i, j int) float64 { return s.distances[i][j] }

// CheckPath verifies every index of path refers to an imported customer.
func (s *Store) CheckPath(path []int) error {
	for pos, idx := range path {
		if idx < 0 || idx >= len(s.customers) {
			return fmt.Errorf("path position %d: customer %d out of range [0, %d): %w", pos, idx, len(s.customers), model.ErrInvalidArgument)
		}
	}
	return nil
}

func validateBase(b DroneBase) error {
	if b.TakeoffSpeed <= 0 || b.CruiseSpeed <= 0 || b.LandingSpeed <= 0 {
		return fmt.Errorf("takeoff, cruise and landing speeds must be positive: %w", model.ErrInvalidArgument)
	}
	return nil
}

func notImported(kind DroneKind) error {
	return fmt.Errorf("drone %s config not imported: %w", kind, model.ErrInvalidArgument)
}
