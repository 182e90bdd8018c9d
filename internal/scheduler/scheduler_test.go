package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeSweeper struct {
	active int
	err    error
	calls  int
}

func (f *fakeSweeper) SweepSessions(context.Context) (int, error) {
	f.calls++
	return f.active, f.err
}

type fakePruner struct {
	maxWindow time.Duration
}

func (f *fakePruner) Prune(_ time.Time, maxWindow time.Duration) int {
	f.maxWindow = maxWindow
	return 3
}

type fakeResetter struct {
	missions int
}

func (f *fakeResetter) Reset() int {
	f.missions++
	return 2
}

type fakeMessages struct {
	calls int
}

func (f *fakeMessages) Reset() {
	f.calls++
}

func TestSessionSweep(t *testing.T) {
	sweeper := &fakeSweeper{active: 4}
	job := SessionSweep("*/10 * * * *", sweeper, zap.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sweeper.calls != 1 {
		t.Errorf("sweeper called %d times, want 1", sweeper.calls)
	}

	sweeper.err = errors.New("redis down")
	if err := job.Run(context.Background()); err == nil {
		t.Error("expected sweep error to be returned")
	}
}

func TestLimiterPrune(t *testing.T) {
	pruner := &fakePruner{}
	job := LimiterPrune(pruner, time.Minute, zap.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pruner.maxWindow != time.Minute {
		t.Errorf("maxWindow = %v, want 1m", pruner.maxWindow)
	}
}

func TestDailyReset(t *testing.T) {
	missions := &fakeResetter{}
	messages := &fakeMessages{}
	job := DailyReset(missions, messages, zap.NewNop())

	if job.Spec != "0 0 * * *" {
		t.Errorf("spec = %q", job.Spec)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missions.missions != 1 || messages.calls != 1 {
		t.Errorf("reset calls = %d/%d, want 1/1", missions.missions, messages.calls)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New(zap.NewNop(), LimiterPrune(&fakePruner{}, time.Minute, zap.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRunRejectsBadSpec(t *testing.T) {
	s := New(zap.NewNop(), Job{Name: "broken", Spec: "not a cron", Run: func(context.Context) error { return nil }})

	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}
