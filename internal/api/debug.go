package api

import (
	"net/http"
	"os"
	"time"

	"d2dsearch/internal/buildinfo"
)

func (s *Server) DebugJSON(w http.ResponseWriter, r *http.Request) {
	info := map[string]any{
		"build":  buildinfo.Current(),
		"time":   time.Now().UTC().Format(time.RFC3339),
		"engine": s.Engine.String(),
		"config": map[string]any{
			"PORT":            os.Getenv("PORT"),
			"ENGINE_SETTINGS": os.Getenv("ENGINE_SETTINGS"),
			"RATE_RPS":        os.Getenv("RATE_RPS"),
			"RATE_BURST":      os.Getenv("RATE_BURST"),
			"EVAL_WORKERS":    os.Getenv("EVAL_WORKERS"),
			"TOUR_CACHE_TTL":  os.Getenv("TOUR_CACHE_TTL"),
			"TOUR_CACHE_SIZE": os.Getenv("TOUR_CACHE_SIZE"),
			"HAS_REDIS_URL":   os.Getenv("REDIS_URL") != "",
		},
	}
	writeJSON(w, http.StatusOK, info)
}
