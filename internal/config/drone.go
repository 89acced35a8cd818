package config

import (
	"fmt"
	"math"
	"strings"

	"d2dsearch/internal/model"
)

const (
	gravity     = 9.8
	frameWeight = 1.5
)

// DroneKind tags which power/energy model a drone uses.
type DroneKind int

const (
	Linear DroneKind = iota
	Nonlinear
	Endurance
)

func (k DroneKind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Nonlinear:
		return "nonlinear"
	case Endurance:
		return "endurance"
	}
	return fmt.Sprintf("DroneKind(%d)", int(k))
}

// ParseDroneKind accepts the integer tags of the computation interface
// (0 linear, 1 nonlinear, 2 endurance).
func ParseDroneKind(tag int) (DroneKind, error) {
	switch k := DroneKind(tag); k {
	case Linear, Nonlinear, Endurance:
		return k, nil
	}
	return 0, fmt.Errorf("invalid config_type = %d: %w", tag, model.ErrInvalidArgument)
}

// ParseEnergyMode accepts the names used in settings files.
func ParseEnergyMode(name string) (DroneKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear, nil
	case "nonlinear", "non-linear":
		return Nonlinear, nil
	case "endurance":
		return Endurance, nil
	}
	return 0, fmt.Errorf("unknown energy mode %q: %w", name, model.ErrInvalidArgument)
}

// DroneBase carries the metadata shared by the Linear and Nonlinear models.
// SpeedType and Range are selection tags for callers and are not interpreted.
type DroneBase struct {
	TakeoffSpeed float64
	CruiseSpeed  float64
	LandingSpeed float64
	Altitude     float64
	Capacity     float64
	Battery      float64
	SpeedType    string
	Range        string
}

// VerticalTime is the time spent climbing to and descending from cruise altitude.
func (b DroneBase) VerticalTime() float64 {
	return b.Altitude * (1/b.TakeoffSpeed + 1/b.LandingSpeed)
}

// DroneLinearConfig draws beta*weight + gamma watts in every flight phase.
type DroneLinearConfig struct {
	DroneBase
	Beta  float64
	Gamma float64
}

func (c DroneLinearConfig) power(weight float64) float64 {
	return c.Beta*weight + c.Gamma
}

// DroneNonlinearConfig uses an induced-power model for vertical flight and a
// drag model for cruise.
type DroneNonlinearConfig struct {
	DroneBase
	K1, K2         float64
	C1, C2, C4, C5 float64
}

func (c DroneNonlinearConfig) verticalPower(speed, weight float64) float64 {
	w := (frameWeight + weight) * gravity
	return c.K1*w*(speed/2+math.Sqrt((speed/2)*(speed/2)+w/(c.K2*c.K2))) + c.C2*math.Pow(w, 1.5)
}

func (c DroneNonlinearConfig) cruisePower(weight float64) float64 {
	w := (frameWeight + weight) * gravity
	v := c.CruiseSpeed
	lift := w - c.C5*math.Pow(v*math.Cos(math.Pi/18), 2)
	drag := c.C4 * v * v
	return (c.C1+c.C2)*math.Pow(lift*lift+drag*drag, 0.75) + c.C4*v*v*v
}

// DroneEnduranceConfig has no power formula: a trip is bounded by a fixed
// flight time and distance at constant speed.
type DroneEnduranceConfig struct {
	SpeedType     string
	Range         string
	Capacity      float64
	FixedTime     float64
	FixedDistance float64
	DroneSpeed    float64
}

// DroneModel is the tagged variant over the three drone configurations.
// Exactly one pointer matching Kind is non-nil.
type DroneModel struct {
	Kind      DroneKind
	Linear    *DroneLinearConfig
	Nonlinear *DroneNonlinearConfig
	Endurance *DroneEnduranceConfig
}

// Base returns the shared metadata for the power-model variants.
func (m DroneModel) Base() (DroneBase, error) {
	switch m.Kind {
	case Linear:
		return m.Linear.DroneBase, nil
	case Nonlinear:
		return m.Nonlinear.DroneBase, nil
	}
	return DroneBase{}, fmt.Errorf("drone model %s has no flight profile: %w", m.Kind, model.ErrInvalidArgument)
}

// Capacity returns the payload limit of any variant.
func (m DroneModel) Capacity() float64 {
	switch m.Kind {
	case Linear:
		return m.Linear.Capacity
	case Nonlinear:
		return m.Nonlinear.Capacity
	default:
		return m.Endurance.Capacity
	}
}

// TakeoffPower returns the takeoff power draw at the given payload weight.
func (m DroneModel) TakeoffPower(weight float64) (float64, error) {
	switch m.Kind {
	case Linear:
		return m.Linear.power(weight), nil
	case Nonlinear:
		return m.Nonlinear.verticalPower(m.Nonlinear.TakeoffSpeed, weight), nil
	}
	return 0, noPowerFormula(m.Kind, "takeoff")
}

// LandingPower returns the landing power draw at the given payload weight.
func (m DroneModel) LandingPower(weight float64) (float64, error) {
	switch m.Kind {
	case Linear:
		return m.Linear.power(weight), nil
	case Nonlinear:
		return m.Nonlinear.verticalPower(m.Nonlinear.LandingSpeed, weight), nil
	}
	return 0, noPowerFormula(m.Kind, "landing")
}

// CruisePower returns the cruise power draw at the given payload weight.
func (m DroneModel) CruisePower(weight float64) (float64, error) {
	switch m.Kind {
	case Linear:
		return m.Linear.power(weight), nil
	case Nonlinear:
		return m.Nonlinear.cruisePower(weight), nil
	}
	return 0, noPowerFormula(m.Kind, "cruise")
}

func noPowerFormula(kind DroneKind, phase string) error {
	return fmt.Errorf("%s power: drone model %s has no power formula: %w", phase, kind, model.ErrInvalidArgument)
}
