package filter

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/eiga/tmdb"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of concurrent goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator evaluates filters over media lists, splitting large
// lists into chunks evaluated in parallel
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the media matching filter, in their original order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter Filter, media []tmdb.Media) ([]tmdb.Media, error) {
	if len(media) == 0 {
		return []tmdb.Media{}, nil
	}

	// For small lists, don't bother with concurrency
	if len(media) < e.batchSize {
		return evaluateSequential(filter, media), nil
	}

	return e.evaluateConcurrent(ctx, filter, media)
}

// EvaluateBatch evaluates several filters against the same media concurrently
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, media []tmdb.Media) (map[string][]tmdb.Media, error) {
	results := make(map[string][]tmdb.Media, len(filters))
	if len(filters) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for name, filter := range filters {
		g.Go(func() error {
			matches, err := e.Evaluate(ctx, filter, media)
			if err != nil {
				return err
			}
			mu.Lock()
			results[name] = matches
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func evaluateSequential(filter Filter, media []tmdb.Media) []tmdb.Media {
	matches := make([]tmdb.Media, 0, len(media)/4)
	for _, m := range media {
		if filter.Evaluate(m) {
			matches = append(matches, m)
		}
	}
	return matches
}

func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter Filter, media []tmdb.Media) ([]tmdb.Media, error) {
	chunkSize := max(len(media)/e.workerCount, e.batchSize)
	chunks := (len(media) + chunkSize - 1) / chunkSize

	// each chunk writes only its own slot
	results := make([][]tmdb.Media, chunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(media))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = evaluateSequential(filter, media[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matches := make([]tmdb.Media, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches, nil
}
