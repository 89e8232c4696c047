package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

type stubReconciler struct {
	calls int
	drift []domain.PointsDrift
	err   error
}

func (r *stubReconciler) Reconcile(context.Context) ([]domain.PointsDrift, error) {
	r.calls++
	return r.drift, r.err
}

type stubLocker struct {
	held     bool
	released bool
	err      error
}

func (l *stubLocker) TryAcquire(context.Context, string, string, time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *stubLocker) Release(context.Context, string, string) error {
	l.held = false
	l.released = true
	return nil
}

func TestRunReconciliation_ObservesDrift(t *testing.T) {
	rec := &stubReconciler{drift: []domain.PointsDrift{{UserID: "u1", Persisted: 5, Derived: 10}}}
	lock := &stubLocker{}
	var observed []domain.PointsDrift

	s := New(rec, lock, func(d []domain.PointsDrift) { observed = d }, zerolog.Nop())
	s.RunReconciliation()

	if rec.calls != 1 {
		t.Fatalf("expected 1 run, got %d", rec.calls)
	}
	if len(observed) != 1 || observed[0].UserID != "u1" {
		t.Fatalf("unexpected observed drift: %+v", observed)
	}
	if !lock.released {
		t.Error("lock must be released after the run")
	}
}

func TestRunReconciliation_SkipsWhenLockHeld(t *testing.T) {
	rec := &stubReconciler{}
	s := New(rec, &stubLocker{held: true}, nil, zerolog.Nop())
	s.RunReconciliation()

	if rec.calls != 0 {
		t.Fatalf("expected no run while another instance holds the lock, got %d", rec.calls)
	}
}

func TestRunReconciliation_LockErrorSkips(t *testing.T) {
	rec := &stubReconciler{}
	s := New(rec, &stubLocker{err: errors.New("redis down")}, nil, zerolog.Nop())
	s.RunReconciliation()

	if rec.calls != 0 {
		t.Fatalf("expected no run on lock error, got %d", rec.calls)
	}
}

func TestRunReconciliation_FailureDoesNotObserve(t *testing.T) {
	rec := &stubReconciler{err: errors.New("mongo down")}
	called := false
	s := New(rec, nil, func([]domain.PointsDrift) { called = true }, zerolog.Nop())
	s.RunReconciliation()

	if called {
		t.Error("observer must not run after a failed reconciliation")
	}
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	s := New(&stubReconciler{}, nil, nil, zerolog.Nop())
	if err := s.Start("not a cron spec"); err == nil {
		s.Stop()
		t.Fatal("expected error for invalid schedule")
	}
}
