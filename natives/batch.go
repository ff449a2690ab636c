package natives

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type VerifyRequest struct {
	Challenge     []byte
	Solution      []byte
	Difficulty    uint64
	Security      uint64
	UseWesolowski bool
}

type VerifyResult struct {
	Valid bool
	Err   error
}

func VerifyBatch(
	ctx context.Context,
	requests []VerifyRequest,
	workers int,
) []VerifyResult {
	return defaultVerifier.VerifyBatch(ctx, requests, workers)
}

// VerifyBatch checks requests concurrently with at most workers in flight,
// defaulting to GOMAXPROCS. Results are index aligned with requests. Requests
// not started before ctx is done report the context error.
func (v *Verifier) VerifyBatch(
	ctx context.Context,
	requests []VerifyRequest,
	workers int,
) []VerifyResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]VerifyResult, len(requests))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i := range requests {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = VerifyResult{Err: err}
				return nil
			}

			r := requests[i]
			valid, err := v.Verify(
				r.Challenge,
				r.Solution,
				r.Difficulty,
				r.Security,
				r.UseWesolowski,
			)
			results[i] = VerifyResult{Valid: valid, Err: err}
			return nil
		})
	}

	// workers never return an error, each result carries its own
	_ = g.Wait()

	return results
}
