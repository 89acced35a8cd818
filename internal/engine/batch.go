package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"d2dsearch/internal/model"
	"d2dsearch/internal/timing"
)

// Scored is one evaluated candidate of a batch.
type Scored struct {
	Plan       model.Solution     `json:"plan"`
	Feasible   bool               `json:"feasible"`
	Evaluation *timing.Evaluation `json:"evaluation"`
}

// EvaluateBatch scores plans on at most workers goroutines. Results keep the
// input order. The first failure cancels the remaining work.
func (e *Engine) EvaluateBatch(ctx context.Context, plans []model.Solution, workers int) (out []Scored, err error) {
	defer e.track(ctx, "evaluate_batch")(&err)
	if workers <= 0 {
		workers = 1
	}

	out = make([]Scored, len(plans))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range plans {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ev, err := timing.Evaluate(e.store, plans[i], e.kind)
			if err != nil {
				return fmt.Errorf("plan %d: %w", i, err)
			}
			ok, err := timing.Feasible(e.store, plans[i], e.kind)
			if err != nil {
				return fmt.Errorf("plan %d: %w", i, err)
			}
			out[i] = Scored{Plan: plans[i], Feasible: ok, Evaluation: ev}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SwapAndEvaluate generates the swap neighbourhood of original and scores
// every candidate concurrently.
func (e *Engine) SwapAndEvaluate(ctx context.Context, original model.Solution, firstLength, secondLength, workers int) ([]Scored, error) {
	candidates, err := e.Swap(ctx, original, firstLength, secondLength)
	if err != nil {
		return nil, err
	}
	return e.EvaluateBatch(ctx, candidates, workers)
}

// InsertAndEvaluate generates the insert neighbourhood of original and scores
// every candidate concurrently.
func (e *Engine) InsertAndEvaluate(ctx context.Context, original model.Solution, length, workers int) ([]Scored, error) {
	candidates, err := e.Insert(ctx, original, length)
	if err != nil {
		return nil, err
	}
	return e.EvaluateBatch(ctx, candidates, workers)
}
