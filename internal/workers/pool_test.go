package workers

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	p := New(4)
	defer p.Close()

	if p.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", p.Workers())
	}
	if !p.Running() {
		t.Error("pool should be running after New")
	}
}

func TestNewDefaultsToGOMAXPROCS(t *testing.T) {
	for _, n := range []int{0, -3} {
		p := New(n)
		if got, want := p.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("New(%d).Workers() = %d, want %d", n, got, want)
		}
		p.Close()
	}
}

func TestRowsVisitsEveryRowOnce(t *testing.T) {
	p := New(3)
	defer p.Close()

	for _, n := range []int{1, 2, 7, 12, 100, 1001} {
		seen := make([]atomic.Int32, n)
		if err := p.Rows(context.Background(), n, func(y int) { seen[y].Add(1) }); err != nil {
			t.Fatalf("Rows(%d): %v", n, err)
		}
		for y := range seen {
			if c := seen[y].Load(); c != 1 {
				t.Errorf("n=%d: row %d visited %d times", n, y, c)
			}
		}
	}
}

func TestRowsZero(t *testing.T) {
	p := New(2)
	defer p.Close()

	called := false
	if err := p.Rows(context.Background(), 0, func(int) { called = true }); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("fn called for zero rows")
	}
}

func TestRowsCanceled(t *testing.T) {
	p := New(2)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count atomic.Int32
	err := p.Rows(ctx, 50, func(int) { count.Add(1) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if count.Load() != 0 {
		t.Errorf("%d rows ran after cancel", count.Load())
	}
}

func TestRowsCancelMidway(t *testing.T) {
	p := New(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var count atomic.Int32
	err := p.Rows(ctx, 1000, func(int) {
		if count.Add(1) == 10 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if c := count.Load(); c >= 1000 {
		t.Errorf("all %d rows ran despite cancel", c)
	}
}

func TestRowsAfterClose(t *testing.T) {
	p := New(2)
	p.Close()

	if p.Running() {
		t.Error("pool running after Close")
	}
	var count atomic.Int32
	if err := p.Rows(context.Background(), 10, func(int) { count.Add(1) }); err != nil {
		t.Fatal(err)
	}
	if count.Load() != 10 {
		t.Errorf("closed pool ran %d rows, want 10", count.Load())
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := New(2)
	p.Close()
	p.Close()
}

func TestRowsConcurrentCallers(t *testing.T) {
	p := New(4)
	defer p.Close()

	var total atomic.Int64
	done := make(chan error, 8)
	for range 8 {
		go func() {
			done <- p.Rows(context.Background(), 64, func(int) { total.Add(1) })
		}()
	}
	for range 8 {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
	if total.Load() != 8*64 {
		t.Errorf("total = %d, want %d", total.Load(), 8*64)
	}
}
