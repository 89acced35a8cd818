package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"d2dsearch/internal/model"
)

// Parameter file names inside a parameter directory.
const (
	TruckFile     = "Truck_config.json"
	LinearFile    = "drone_linear_config.json"
	NonlinearFile = "drone_nonelinear_config.json"
	EnduranceFile = "drone_endurance_model_config.json"
)

// Params is every configuration listed in a parameter directory, in file order.
type Params struct {
	Truck     TruckConfig
	Linear    []DroneLinearConfig
	Nonlinear []DroneNonlinearConfig
	Endurance []DroneEnduranceConfig
}

type truckFile struct {
	MaximumVelocity float64         `json:"V_max (m/s)"`
	MT              float64         `json:"M_t (kg)"`
	Hours           json.RawMessage `json:"T (hour)"`
}

type droneEntry struct {
	TakeoffSpeed float64 `json:"takeoffSpeed [m/s]"`
	CruiseSpeed  float64 `json:"cruiseSpeed [m/s]"`
	LandingSpeed float64 `json:"landingSpeed [m/s]"`
	Altitude     float64 `json:"cruiseAlt [m]"`
	Capacity     float64 `json:"capacity [kg]"`
	Battery      float64 `json:"batteryPower [Joule]"`
	SpeedType    string  `json:"speed_type"`
	Range        string  `json:"range"`
	Beta         float64 `json:"beta(w/kg)"`
	Gamma        float64 `json:"gama(w)"`
}

func (e droneEntry) base() DroneBase {
	return DroneBase{
		TakeoffSpeed: e.TakeoffSpeed,
		CruiseSpeed:  e.CruiseSpeed,
		LandingSpeed: e.LandingSpeed,
		Altitude:     e.Altitude,
		Capacity:     e.Capacity,
		Battery:      e.Battery,
		SpeedType:    e.SpeedType,
		Range:        e.Range,
	}
}

type nonlinearCoefficients struct {
	K1 float64 `json:"k1"`
	K2 float64 `json:"k2 (sqrt(kg/m)"`
	C1 float64 `json:"c1 (sqrt(m/kg)"`
	C2 float64 `json:"c2 (sqrt(m/kg)"`
	C4 float64 `json:"c4 (kg/m)"`
	C5 float64 `json:"c5 (Ns/m)"`
}

type enduranceEntry struct {
	SpeedType     string  `json:"speed_type"`
	Range         string  `json:"range"`
	Capacity      float64 `json:"capacity [kg]"`
	FixedTime     float64 `json:"FixedTime (s)"`
	FixedDistance float64 `json:"FixedDistance (m)"`
	DroneSpeed    float64 `json:"Drone_speed (m/s)"`
}

// field is one member of a JSON object, kept in document order.
type field struct {
	Key   string
	Value json.RawMessage
}

// orderedObject decodes a JSON object without losing member order, which
// encoding into a map would.
func orderedObject(data []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var out []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		out = append(out, field{Key: key, Value: raw})
	}
	return out, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// LoadParams reads the four parameter files from dir.
func LoadParams(dir string) (*Params, error) {
	p := &Params{}
	read := func(name string) ([]byte, error) {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("load params: %w", err)
		}
		return b, nil
	}

	b, err := read(TruckFile)
	if err != nil {
		return nil, err
	}
	if p.Truck, err = parseTruck(b); err != nil {
		return nil, fmt.Errorf("load params: %s: %w", TruckFile, err)
	}

	if b, err = read(LinearFile); err != nil {
		return nil, err
	}
	if p.Linear, err = parseLinear(b); err != nil {
		return nil, fmt.Errorf("load params: %s: %w", LinearFile, err)
	}

	if b, err = read(NonlinearFile); err != nil {
		return nil, err
	}
	if p.Nonlinear, err = parseNonlinear(b); err != nil {
		return nil, fmt.Errorf("load params: %s: %w", NonlinearFile, err)
	}

	if b, err = read(EnduranceFile); err != nil {
		return nil, err
	}
	if p.Endurance, err = parseEndurance(b); err != nil {
		return nil, fmt.Errorf("load params: %s: %w", EnduranceFile, err)
	}
	return p, nil
}

func parseTruck(data []byte) (TruckConfig, error) {
	var tf truckFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return TruckConfig{}, err
	}
	hours, err := orderedObject(tf.Hours)
	if err != nil {
		return TruckConfig{}, fmt.Errorf("T (hour): %w", err)
	}
	coefficients := make([]float64, 0, len(hours))
	for _, h := range hours {
		var c float64
		if err := json.Unmarshal(h.Value, &c); err != nil {
			return TruckConfig{}, fmt.Errorf("T (hour) %q: %w", h.Key, err)
		}
		coefficients = append(coefficients, c)
	}
	return TruckConfig{MaximumVelocity: tf.MaximumVelocity, MT: tf.MT, Coefficients: coefficients}, nil
}

func parseLinear(data []byte) ([]DroneLinearConfig, error) {
	entries, err := orderedObject(data)
	if err != nil {
		return nil, err
	}
	out := make([]DroneLinearConfig, 0, len(entries))
	for _, e := range entries {
		var d droneEntry
		if err := json.Unmarshal(e.Value, &d); err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Key, err)
		}
		out = append(out, DroneLinearConfig{DroneBase: d.base(), Beta: d.Beta, Gamma: d.Gamma})
	}
	return out, nil
}

func parseNonlinear(data []byte) ([]DroneNonlinearConfig, error) {
	var k nonlinearCoefficients
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, err
	}
	entries, err := orderedObject(data)
	if err != nil {
		return nil, err
	}
	var out []DroneNonlinearConfig
	for _, e := range entries {
		if !isObject(e.Value) {
			continue
		}
		var d droneEntry
		if err := json.Unmarshal(e.Value, &d); err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Key, err)
		}
		out = append(out, DroneNonlinearConfig{
			DroneBase: d.base(),
			K1:        k.K1, K2: k.K2,
			C1: k.C1, C2: k.C2, C4: k.C4, C5: k.C5,
		})
	}
	return out, nil
}

func parseEndurance(data []byte) ([]DroneEnduranceConfig, error) {
	entries, err := orderedObject(data)
	if err != nil {
		return nil, err
	}
	out := make([]DroneEnduranceConfig, 0, len(entries))
	for _, e := range entries {
		var d enduranceEntry
		if err := json.Unmarshal(e.Value, &d); err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Key, err)
		}
		out = append(out, DroneEnduranceConfig(d))
	}
	return out, nil
}

// Apply imports the truck profile and the index-th configuration of the
// selected drone variant into s. The other variants are imported too when
// their lists reach index and skipped otherwise, so a short list for an
// unused variant never blocks loading.
func (p *Params) Apply(s *Store, selected DroneKind, index int) error {
	if err := s.ImportTruckConfig(p.Truck.MaximumVelocity, p.Truck.MT, p.Truck.Coefficients); err != nil {
		return err
	}
	variants := []struct {
		kind DroneKind
		n    int
		load func() error
	}{
		{Linear, len(p.Linear), func() error {
			c := p.Linear[index]
			return s.ImportDroneLinearConfig(c.DroneBase, c.Beta, c.Gamma)
		}},
		{Nonlinear, len(p.Nonlinear), func() error {
			c := p.Nonlinear[index]
			return s.ImportDroneNonlinearConfig(c.DroneBase, c.K1, c.K2, c.C1, c.C2, c.C4, c.C5)
		}},
		{Endurance, len(p.Endurance), func() error {
			return s.ImportDroneEnduranceConfig(p.Endurance[index])
		}},
	}
	for _, v := range variants {
		if index < 0 || index >= v.n {
			if v.kind == selected {
				return outOfRange(v.kind, index, v.n)
			}
			s.log.WithFields(logrus.Fields{"kind": v.kind.String(), "index": index, "entries": v.n}).Debug("drone config skipped")
			continue
		}
		if err := v.load(); err != nil {
			return err
		}
	}
	return nil
}

func outOfRange(kind DroneKind, index, n int) error {
	return fmt.Errorf("apply params: %s config index %d out of range [0, %d): %w", kind, index, n, model.ErrInvalidArgument)
}
