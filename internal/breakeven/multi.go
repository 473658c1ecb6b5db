package breakeven

import (
	"context"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SolveBoth runs the same search once for each parent. The searches share
// nothing but the engine, so they run concurrently. Party in the request's
// constraints is ignored.
func (s *Solver) SolveBoth(ctx context.Context, req Request) (*MultiResult, error) {
	parties := []domain.Party{domain.ParentA, domain.ParentB}
	results := make([]Result, len(parties))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range parties {
		r := req
		r.Constraints.Party = p
		g.Go(func() error {
			res, err := s.Solve(ctx, r)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MultiResult{Results: results}, nil
}

// Successful returns the searches that reached their goal
func (m *MultiResult) Successful() []Result {
	var out []Result
	for _, r := range m.Results {
		if r.Success {
			out = append(out, r)
		}
	}
	return out
}
