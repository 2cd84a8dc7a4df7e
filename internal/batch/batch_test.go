package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"napi/internal/download"
)

type funcFetcher func(ctx context.Context, input string) download.Result

func (f funcFetcher) Fetch(ctx context.Context, input string) download.Result {
	return f(ctx, input)
}

func stored(input string) download.Result {
	return download.Result{Input: input, Outcome: download.OutcomeStored}
}

func TestRunPreservesInputOrder(t *testing.T) {
	inputs := []string{"a.mkv", "b.mkv", "c.mkv", "d.mkv"}
	// Earlier inputs finish last to force completion order != input order.
	delays := map[string]time.Duration{
		"a.mkv": 40 * time.Millisecond,
		"b.mkv": 30 * time.Millisecond,
		"c.mkv": 10 * time.Millisecond,
		"d.mkv": 0,
	}
	fetcher := funcFetcher(func(_ context.Context, input string) download.Result {
		time.Sleep(delays[input])
		return stored(input)
	})

	report := NewCoordinator(fetcher, 4, nil, nil).Run(context.Background(), inputs)
	if len(report.Results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(report.Results))
	}
	for i, result := range report.Results {
		if result.Input != inputs[i] {
			t.Fatalf("result %d = %q, want %q", i, result.Input, inputs[i])
		}
	}
	if report.BatchID == "" {
		t.Fatal("expected a batch id")
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	const workers = 2
	var inFlight, peak atomic.Int32
	fetcher := funcFetcher(func(_ context.Context, input string) download.Result {
		current := inFlight.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return stored(input)
	})

	inputs := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	NewCoordinator(fetcher, workers, nil, nil).Run(context.Background(), inputs)
	if got := peak.Load(); got > workers {
		t.Fatalf("observed %d concurrent lookups, worker bound is %d", got, workers)
	}
}

func TestExitCodeMixedBatch(t *testing.T) {
	fetcher := funcFetcher(func(_ context.Context, input string) download.Result {
		if input == "missing.mkv" {
			return download.Result{Input: input, Outcome: download.OutcomeNotFound}
		}
		return stored(input)
	})

	report := NewCoordinator(fetcher, 3, nil, nil).Run(context.Background(), []string{"a.mkv", "missing.mkv", "b.mkv"})
	if code := report.ExitCode(); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	storedN, _, notFound, _ := report.Counts()
	if storedN != 2 || notFound != 1 {
		t.Fatalf("counts = %d stored, %d not found", storedN, notFound)
	}
}

func TestExitCodeAllOK(t *testing.T) {
	fetcher := funcFetcher(func(_ context.Context, input string) download.Result {
		if input == "existing.mkv" {
			return download.Result{Input: input, Outcome: download.OutcomeSkipped}
		}
		return stored(input)
	})

	report := NewCoordinator(fetcher, 2, nil, nil).Run(context.Background(), []string{"a.mkv", "existing.mkv"})
	if code := report.ExitCode(); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}

func TestRunCancellationStopsDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	var once sync.Once
	fetcher := funcFetcher(func(ctx context.Context, input string) download.Result {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return download.Result{Input: input, Outcome: download.OutcomeFailed, Err: ctx.Err()}
	})

	go func() {
		<-started
		cancel()
	}()

	inputs := []string{"a", "b", "c", "d", "e"}
	report := NewCoordinator(fetcher, 1, nil, nil).Run(ctx, inputs)
	if len(report.Results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(report.Results))
	}
	for i, result := range report.Results {
		if result.Outcome != download.OutcomeFailed {
			t.Fatalf("result %d outcome = %v, want failed after cancel", i, result.Outcome)
		}
	}
	if report.ExitCode() == 0 {
		t.Fatal("cancelled batch must not exit 0")
	}
}

func TestRunEmptyInputs(t *testing.T) {
	report := NewCoordinator(funcFetcher(func(_ context.Context, input string) download.Result {
		t.Error("fetcher should not run")
		return download.Result{}
	}), 4, nil, nil).Run(context.Background(), nil)
	if len(report.Results) != 0 || report.ExitCode() != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestRunReportsProgressOncePerInput(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]int{}
	progress := func(index, total int, result download.Result) {
		mu.Lock()
		seen[index]++
		mu.Unlock()
		if total != 3 {
			t.Errorf("total = %d", total)
		}
	}
	fetcher := funcFetcher(func(_ context.Context, input string) download.Result {
		return stored(input)
	})

	NewCoordinator(fetcher, 3, nil, progress).Run(context.Background(), []string{"a", "b", "c"})
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 3 {
		t.Fatalf("progress for %d inputs, want 3", len(seen))
	}
	for index, count := range seen {
		if count != 1 {
			t.Fatalf("input %d reported %d times", index, count)
		}
	}
}
