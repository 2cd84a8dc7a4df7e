package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"napi/internal/download"
	"napi/internal/logging"
	"napi/internal/services"
)

// Fetcher processes one input to its terminal state.
type Fetcher interface {
	Fetch(ctx context.Context, input string) download.Result
}

// Progress is invoked once per input as it finishes, in completion order.
// Calls are serialized.
type Progress func(index, total int, result download.Result)

// Report aggregates the per-input results of one batch run. Results are
// ordered by input index, not completion time.
type Report struct {
	BatchID    string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []download.Result
}

// Counts tallies results by outcome.
func (r *Report) Counts() (stored, skipped, notFound, failed int) {
	for _, result := range r.Results {
		switch result.Outcome {
		case download.OutcomeStored:
			stored++
		case download.OutcomeSkipped:
			skipped++
		case download.OutcomeNotFound:
			notFound++
		default:
			failed++
		}
	}
	return stored, skipped, notFound, failed
}

// ExitCode is 0 only when every input was stored or deliberately skipped.
func (r *Report) ExitCode() int {
	for _, result := range r.Results {
		if !result.OK() {
			return 1
		}
	}
	return 0
}

// Coordinator dispatches lookups across a fixed worker pool.
type Coordinator struct {
	fetcher  Fetcher
	workers  int
	logger   *slog.Logger
	progress Progress

	progressMu sync.Mutex
}

// NewCoordinator builds a Coordinator. A non-positive worker count falls back
// to 1; progress may be nil.
func NewCoordinator(fetcher Fetcher, workers int, logger *slog.Logger, progress Progress) *Coordinator {
	if workers <= 0 {
		workers = 1
	}
	return &Coordinator{
		fetcher:  fetcher,
		workers:  workers,
		logger:   logging.NewComponentLogger(logger, "batch"),
		progress: progress,
	}
}

// Run processes every input and returns the ordered report. Each input yields
// exactly one result. Cancelling the context stops new lookups; inputs that
// never ran report the context error.
func (c *Coordinator) Run(ctx context.Context, inputs []string) *Report {
	report := &Report{
		BatchID:   uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Results:   make([]download.Result, len(inputs)),
	}
	if len(inputs) == 0 {
		report.FinishedAt = time.Now().UTC()
		return report
	}

	ctx = services.WithBatchID(ctx, report.BatchID)
	workers := c.workers
	if workers > len(inputs) {
		workers = len(inputs)
	}

	c.logger.Info("batch started",
		logging.String(logging.FieldBatchID, report.BatchID),
		logging.Int("inputs", len(inputs)),
		logging.Int("workers", workers),
	)

	jobs := make(chan int, len(inputs))
	for idx := range inputs {
		jobs <- idx
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				input := inputs[idx]
				var result download.Result
				if err := ctx.Err(); err != nil {
					result = download.Result{
						Input:   input,
						Outcome: download.OutcomeFailed,
						Err:     services.Wrap(services.ErrNetwork, "batch", "dispatch", "batch cancelled", err),
					}
				} else {
					result = c.fetcher.Fetch(ctx, input)
				}
				report.Results[idx] = result
				c.notify(idx, len(inputs), result)
			}
		}()
	}
	wg.Wait()

	report.FinishedAt = time.Now().UTC()
	stored, skipped, notFound, failed := report.Counts()
	c.logger.Info("batch finished",
		logging.String(logging.FieldBatchID, report.BatchID),
		logging.Int("stored", stored),
		logging.Int("skipped", skipped),
		logging.Int("not_found", notFound),
		logging.Int("failed", failed),
		logging.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}

func (c *Coordinator) notify(index, total int, result download.Result) {
	if c.progress == nil {
		return
	}
	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	c.progress(index, total, result)
}
