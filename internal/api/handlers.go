package api

import (
	"context"
	"net/http"
	"time"

	"d2dsearch/internal/engine"
	"d2dsearch/internal/model"
	"d2dsearch/internal/timing"
	"d2dsearch/internal/tsp"
)

type droneTimestampsRequest struct {
	Path       []int   `json:"path"`
	ConfigType int     `json:"configType"`
	Offset     float64 `json:"offset"`
}

type technicianTimestampsRequest struct {
	Path []int `json:"path"`
}

type timestampsResponse struct {
	ArrivalTimestamps []float64 `json:"arrivalTimestamps"`
}

type waitingRequest struct {
	Path              []int     `json:"path"`
	ArrivalTimestamps []float64 `json:"arrivalTimestamps"`
}

type waitingResponse struct {
	TotalWaitingTime float64 `json:"totalWaitingTime"`
}

type tspRequest struct {
	Cities []model.Point `json:"cities"`
	First  int           `json:"first"`
	// HeuristicHint seeds the genetic population with this permutation.
	HeuristicHint []int `json:"heuristicHint,omitempty"`
	// Heuristic asks the server to build the hint by nearest neighbour and 2-opt.
	Heuristic bool `json:"heuristic,omitempty"`
}

type swapRequest struct {
	Solution     model.Solution `json:"solution"`
	FirstLength  int            `json:"firstLength"`
	SecondLength int            `json:"secondLength"`
	// Evaluate scores every neighbour as well.
	Evaluate bool `json:"evaluate,omitempty"`
}

type neighbourhoodResponse struct {
	Count      int              `json:"count"`
	Neighbours []model.Solution `json:"neighbours,omitempty"`
	Scored     []engine.Scored  `json:"scored,omitempty"`
}

type insertRequest struct {
	Solution model.Solution `json:"solution"`
	Length   int            `json:"length"`
	Evaluate bool           `json:"evaluate,omitempty"`
}

type evaluateRequest struct {
	Solution *model.Solution  `json:"solution,omitempty"`
	Plans    []model.Solution `json:"plans,omitempty"`
}

type evaluateResponse struct {
	Feasible   bool               `json:"feasible"`
	Evaluation *timing.Evaluation `json:"evaluation"`
}

type initialRequest struct {
	Technicians int `json:"technicians"`
	Drones      int `json:"drones"`
}

// heuristicIterations bounds the 2-opt pass of a server-built hint.
const heuristicIterations = 20

func (s *Server) DroneTimestampsHandler(w http.ResponseWriter, r *http.Request) {
	var req droneTimestampsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := s.Engine.DroneArrivalTimestamps(r.Context(), req.Path, req.ConfigType, req.Offset)
	if err != nil {
		writeError(w, r, "Drone timestamps failed", err)
		return
	}
	writeJSON(w, http.StatusOK, timestampsResponse{ArrivalTimestamps: out})
}

func (s *Server) TechnicianTimestampsHandler(w http.ResponseWriter, r *http.Request) {
	var req technicianTimestampsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := s.Engine.TechnicianArrivalTimestamps(r.Context(), req.Path)
	if err != nil {
		writeError(w, r, "Technician timestamps failed", err)
		return
	}
	writeJSON(w, http.StatusOK, timestampsResponse{ArrivalTimestamps: out})
}

func (s *Server) DroneWaitingTimeHandler(w http.ResponseWriter, r *http.Request) {
	s.waitingTime(w, r, "Drone waiting time failed", s.Engine.DroneTotalWaitingTime)
}

func (s *Server) TechnicianWaitingTimeHandler(w http.ResponseWriter, r *http.Request) {
	s.waitingTime(w, r, "Technician waiting time failed", s.Engine.TechnicianTotalWaitingTime)
}

func (s *Server) waitingTime(w http.ResponseWriter, r *http.Request, title string, fn func(context.Context, []int, []float64) (float64, error)) {
	var req waitingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateWaitingRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid waiting time request", err.Error(), r.URL.Path)
		return
	}
	total, err := fn(r.Context(), req.Path, req.ArrivalTimestamps)
	if err != nil {
		writeError(w, r, title, err)
		return
	}
	writeJSON(w, http.StatusOK, waitingResponse{TotalWaitingTime: total})
}

func (s *Server) TSPHandler(w http.ResponseWriter, r *http.Request) {
	var req tspRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateTSPRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid TSP request", err.Error(), r.URL.Path)
		return
	}

	hint := req.HeuristicHint
	if req.Heuristic && len(req.Cities) > tsp.HeldKarpLimit {
		h, err := tsp.HeuristicHint(req.Cities, heuristicIterations)
		if err != nil {
			writeError(w, r, "Heuristic hint failed", err)
			return
		}
		hint = h
	}

	res, err := s.Engine.SolveTSP(r.Context(), req.Cities, req.First, hint)
	if err != nil {
		writeError(w, r, "TSP solve failed", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) SwapHandler(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateSwapRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid swap request", err.Error(), r.URL.Path)
		return
	}

	if req.Evaluate {
		scored, err := s.Engine.SwapAndEvaluate(r.Context(), req.Solution, req.FirstLength, req.SecondLength, s.Workers)
		if err != nil {
			writeError(w, r, "Swap failed", err)
			return
		}
		writeJSON(w, http.StatusOK, neighbourhoodResponse{Count: len(scored), Scored: scored})
		return
	}

	out, err := s.Engine.Swap(r.Context(), req.Solution, req.FirstLength, req.SecondLength)
	if err != nil {
		writeError(w, r, "Swap failed", err)
		return
	}
	writeJSON(w, http.StatusOK, neighbourhoodResponse{Count: len(out), Neighbours: out})
}

func (s *Server) InsertHandler(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateInsertRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid insert request", err.Error(), r.URL.Path)
		return
	}

	if req.Evaluate {
		scored, err := s.Engine.InsertAndEvaluate(r.Context(), req.Solution, req.Length, s.Workers)
		if err != nil {
			writeError(w, r, "Insert failed", err)
			return
		}
		writeJSON(w, http.StatusOK, neighbourhoodResponse{Count: len(scored), Scored: scored})
		return
	}

	out, err := s.Engine.Insert(r.Context(), req.Solution, req.Length)
	if err != nil {
		writeError(w, r, "Insert failed", err)
		return
	}
	writeJSON(w, http.StatusOK, neighbourhoodResponse{Count: len(out), Neighbours: out})
}

func (s *Server) EvaluateHandler(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateEvaluateRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid evaluate request", err.Error(), r.URL.Path)
		return
	}

	if req.Solution != nil {
		ev, err := s.Engine.Evaluate(r.Context(), *req.Solution)
		if err != nil {
			writeError(w, r, "Evaluate failed", err)
			return
		}
		ok, err := s.Engine.Feasible(r.Context(), *req.Solution)
		if err != nil {
			writeError(w, r, "Evaluate failed", err)
			return
		}
		writeJSON(w, http.StatusOK, evaluateResponse{Feasible: ok, Evaluation: ev})
		return
	}

	scored, err := s.Engine.EvaluateBatch(r.Context(), req.Plans, s.Workers)
	if err != nil {
		writeError(w, r, "Evaluate failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scored": scored})
}

func (s *Server) InitialHandler(w http.ResponseWriter, r *http.Request) {
	var req initialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateInitialRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid initial request", err.Error(), r.URL.Path)
		return
	}
	plan, err := s.Engine.Initial(r.Context(), req.Technicians, req.Drones)
	if err != nil {
		writeError(w, r, "Initial plan failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"solution": plan})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if s.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := s.Ready.Ping(ctx); err != nil {
			writeProblem(w, http.StatusServiceUnavailable, "Not Ready", err.Error(), r.URL.Path)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
