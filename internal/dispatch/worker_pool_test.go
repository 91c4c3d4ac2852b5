package dispatch

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunAll_RunsEveryTask(t *testing.T) {
	var n atomic.Int32
	tasks := make([]Task, 0, 50)
	for i := 0; i < 50; i++ {
		tasks = append(tasks, Task{Key: strconv.Itoa(i), Run: func(context.Context) error {
			n.Add(1)
			return nil
		}})
	}

	results := RunAll(context.Background(), 4, 0, tasks)
	if len(results) != 50 {
		t.Fatalf("expected 50 results, got %d", len(results))
	}
	if n.Load() != 50 {
		t.Fatalf("expected 50 runs, got %d", n.Load())
	}
}

func TestRunAll_FailureIsolated(t *testing.T) {
	boom := errors.New("boom")
	tasks := []Task{
		{Key: "a", Run: func(context.Context) error { return nil }},
		{Key: "b", Run: func(context.Context) error { return boom }},
		{Key: "c", Run: func(context.Context) error { panic("bad") }},
		{Key: "d", Run: func(context.Context) error { return nil }},
	}

	results := RunAll(context.Background(), 2, 0, tasks)
	sort.Slice(results, func(i, j int) bool { return results[i].Key < results[j].Key })

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[0].Err != nil || results[3].Err != nil {
		t.Fatalf("expected a and d to succeed: %+v", results)
	}
	if !errors.Is(results[1].Err, boom) {
		t.Fatalf("expected boom for b, got %v", results[1].Err)
	}
	var pe *PanicError
	if !errors.As(results[2].Err, &pe) || pe.Key != "c" {
		t.Fatalf("expected PanicError for c, got %v", results[2].Err)
	}
}

func TestRunAll_Empty(t *testing.T) {
	if got := RunAll(context.Background(), 4, 0, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestRunAll_RateLimited(t *testing.T) {
	tasks := make([]Task, 0, 3)
	for i := 0; i < 3; i++ {
		tasks = append(tasks, Task{Key: strconv.Itoa(i), Run: func(context.Context) error { return nil }})
	}

	start := time.Now()
	results := RunAll(context.Background(), 3, 50, tasks)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected rate limit to spread starts, took %s", elapsed)
	}
}

func TestWorkerPool_CancelStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewWorkerPool(2, 0)
	results := p.Run(ctx)
	cancel()

	select {
	case _, ok := <-results:
		if ok {
			t.Fatalf("expected no results after cancel")
		}
	case <-time.After(time.Second):
		t.Fatalf("results channel not closed after cancel")
	}
}

func TestRunAll_ReportsTaskFinishedAfterCancel(t *testing.T) {
	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		tasks := []Task{{Key: "c1", Run: func(context.Context) error {
			cancel()
			return nil
		}}}

		results := RunAll(ctx, 1, 0, tasks)
		if len(results) != 1 || results[0].Key != "c1" || results[0].Err != nil {
			t.Fatalf("run %d: expected one successful result, got %+v", i, results)
		}
	}
}
