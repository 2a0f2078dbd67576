package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type stubExpirer struct {
	calls   int
	changed int64
	err     error
}

func (s *stubExpirer) ExpireContracts(ctx context.Context) (int64, error) {
	s.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("expected a deadline")
	}
	return s.changed, s.err
}

func TestContractExpiryJob_LogsCount(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	expirer := &stubExpirer{changed: 4}

	NewContractExpiryJob(expirer, logger).Run()

	if expirer.calls != 1 {
		t.Fatalf("expected one call, got %d", expirer.calls)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.InfoLevel {
		t.Fatalf("expected info entry, got %+v", entry)
	}
	if entry.Data["expired"] != int64(4) {
		t.Fatalf("expected expired=4, got %v", entry.Data["expired"])
	}
}

func TestContractExpiryJob_LogsFailure(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()

	NewContractExpiryJob(&stubExpirer{err: errors.New("db down")}, logger).Run()

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected error entry, got %+v", entry)
	}
}

func TestScheduler_AddContractExpiry(t *testing.T) {
	t.Parallel()

	logger, _ := logtest.NewNullLogger()
	s := NewScheduler(time.UTC, logger)

	if err := s.AddContractExpiry("5 0 * * *", &stubExpirer{}); err != nil {
		t.Fatalf("AddContractExpiry returned error: %v", err)
	}
	if err := s.AddContractExpiry("every day", &stubExpirer{}); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
	if s.Len() != 1 {
		t.Fatalf("expected one scheduled job, got %d", s.Len())
	}
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
