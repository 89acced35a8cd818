package api

import (
	"fmt"

	"d2dsearch/internal/model"
)

// Limits keep a single request from monopolising the engine. The move
// generators return O(n^2) copies of their input, hence the tight
// maxNeighbourhoodNodes.
const (
	maxSegmentLength      = 64
	maxTSPCities          = 300
	maxBatchPlans         = 10000
	maxVehicles           = 1000
	maxNeighbourhoodNodes = 200
	maxPlanNodes          = 5000
	maxBatchNodes         = 200000
)

// planNodes counts every index of every path of sol.
func planNodes(sol model.Solution) int {
	n := 0
	for _, p := range sol.TechnicianPaths {
		n += len(p)
	}
	for _, trips := range sol.DronePaths {
		for _, p := range trips {
			n += len(p)
		}
	}
	return n
}

func checkNeighbourhoodPlan(sol model.Solution) error {
	if n := planNodes(sol); n > maxNeighbourhoodNodes {
		return fmt.Errorf("solution has %d nodes, at most %d are accepted", n, maxNeighbourhoodNodes)
	}
	return nil
}

func validateWaitingRequest(req *waitingRequest) error {
	if len(req.Path) != len(req.ArrivalTimestamps) {
		return fmt.Errorf("path and arrivalTimestamps must have the same length (%d != %d)", len(req.Path), len(req.ArrivalTimestamps))
	}
	return nil
}

func validateTSPRequest(req *tspRequest) error {
	if len(req.Cities) == 0 {
		return fmt.Errorf("cities must not be empty")
	}
	if len(req.Cities) > maxTSPCities {
		return fmt.Errorf("at most %d cities are accepted", maxTSPCities)
	}
	if req.First < 0 || req.First >= len(req.Cities) {
		return fmt.Errorf("first must be in [0,%d)", len(req.Cities))
	}
	if req.Heuristic && len(req.HeuristicHint) > 0 {
		return fmt.Errorf("heuristic and heuristicHint are mutually exclusive")
	}
	return nil
}

func validateSwapRequest(req *swapRequest) error {
	if req.FirstLength < 0 || req.SecondLength < 0 {
		return fmt.Errorf("firstLength and secondLength must be >= 0")
	}
	if req.FirstLength > maxSegmentLength || req.SecondLength > maxSegmentLength {
		return fmt.Errorf("segment lengths must be <= %d", maxSegmentLength)
	}
	return checkNeighbourhoodPlan(req.Solution)
}

func validateInsertRequest(req *insertRequest) error {
	if req.Length < 1 || req.Length > maxSegmentLength {
		return fmt.Errorf("length must be in [1,%d]", maxSegmentLength)
	}
	return checkNeighbourhoodPlan(req.Solution)
}

func validateEvaluateRequest(req *evaluateRequest) error {
	if req.Solution == nil && len(req.Plans) == 0 {
		return fmt.Errorf("solution or plans is required")
	}
	if req.Solution != nil && len(req.Plans) > 0 {
		return fmt.Errorf("solution and plans are mutually exclusive")
	}
	if len(req.Plans) > maxBatchPlans {
		return fmt.Errorf("at most %d plans are accepted", maxBatchPlans)
	}
	if req.Solution != nil {
		if n := planNodes(*req.Solution); n > maxPlanNodes {
			return fmt.Errorf("solution has %d nodes, at most %d are accepted", n, maxPlanNodes)
		}
	}
	total := 0
	for i, p := range req.Plans {
		n := planNodes(p)
		if n > maxPlanNodes {
			return fmt.Errorf("plan %d has %d nodes, at most %d are accepted", i, n, maxPlanNodes)
		}
		total += n
	}
	if total > maxBatchNodes {
		return fmt.Errorf("plans hold %d nodes in total, at most %d are accepted", total, maxBatchNodes)
	}
	return nil
}

func validateInitialRequest(req *initialRequest) error {
	if req.Technicians < 0 || req.Drones < 0 {
		return fmt.Errorf("technicians and drones must be >= 0")
	}
	if req.Technicians > maxVehicles || req.Drones > maxVehicles {
		return fmt.Errorf("at most %d vehicles of each kind are accepted", maxVehicles)
	}
	return nil
}
