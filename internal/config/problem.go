package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"d2dsearch/internal/model"
)

var (
	customersRe = regexp.MustCompile(`Customers (\d+)`)
	dronesRe    = regexp.MustCompile(`number_drone (\d+)`)
	rowRe       = regexp.MustCompile(`([-\d\.]+)\s+([-\d\.]+)\s+([\d\.]+)\s+(0|1)\t([\d\.]+)\s+([\d\.]+)`)
)

// Problem is a parsed problem instance. Index 0 is the depot at the origin.
type Problem struct {
	Name             string
	CustomersCount   int
	DronesCount      int
	TechniciansCount int

	X                     []float64
	Y                     []float64
	Demands               []float64
	Dronable              []bool
	DroneServiceTime      []float64
	TechnicianServiceTime []float64
}

// LoadProblem reads and parses a problem file.
func LoadProblem(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load problem: %w", err)
	}
	p, err := ParseProblem(string(data))
	if err != nil {
		return nil, fmt.Errorf("load problem %s: %w", path, err)
	}
	p.Name = strings.TrimSuffix(filepath.Base(path), ".txt")
	return p, nil
}

// ParseProblem parses the problem text format. Each customer row holds
// "x y demand technician_only<TAB>technician_service drone_service". The
// technician count follows the drone count.
func ParseProblem(data string) (*Problem, error) {
	customers, err := headerInt(customersRe, data, "Customers")
	if err != nil {
		return nil, err
	}
	drones, err := headerInt(dronesRe, data, "number_drone")
	if err != nil {
		return nil, err
	}

	p := &Problem{
		CustomersCount:        customers,
		DronesCount:           drones,
		TechniciansCount:      drones,
		X:                     []float64{0},
		Y:                     []float64{0},
		Demands:               []float64{0},
		Dronable:              []bool{true},
		DroneServiceTime:      []float64{0},
		TechnicianServiceTime: []float64{0},
	}

	for _, m := range rowRe.FindAllStringSubmatch(data, -1) {
		var vals [5]float64
		for i, s := range []string{m[1], m[2], m[3], m[5], m[6]} {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("parse problem: row %q: %w", strings.TrimSpace(m[0]), model.ErrInvalidArgument)
			}
			vals[i] = v
		}
		p.X = append(p.X, vals[0])
		p.Y = append(p.Y, vals[1])
		p.Demands = append(p.Demands, vals[2])
		p.Dronable = append(p.Dronable, m[4] == "0")
		p.TechnicianServiceTime = append(p.TechnicianServiceTime, vals[3])
		p.DroneServiceTime = append(p.DroneServiceTime, vals[4])
	}

	if got := len(p.X) - 1; got != customers {
		return nil, fmt.Errorf("parse problem: header declares %d customers, found %d rows: %w", customers, got, model.ErrInvalidArgument)
	}
	return p, nil
}

// Import loads the customers (depot included) into s.
func (p *Problem) Import(s *Store) error {
	return s.ImportCustomers(p.X, p.Y, p.Demands, p.Dronable, p.DroneServiceTime, p.TechnicianServiceTime)
}

func headerInt(re *regexp.Regexp, data, name string) (int, error) {
	m := re.FindStringSubmatch(data)
	if m == nil {
		return 0, fmt.Errorf("parse problem: missing %q header: %w", name, model.ErrInvalidArgument)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("parse problem: %s: %w", name, model.ErrInvalidArgument)
	}
	return n, nil
}
