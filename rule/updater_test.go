package rule

import (
	"context"
	"errors"
	"testing"

	"dlc-rules/logger"
)

func TestUpdater_RunOnce(t *testing.T) {
	calls := 0
	jobErr := errors.New("boom")
	u := NewUpdater("", func() error {
		calls++
		if calls == 2 {
			return jobErr
		}
		return nil
	}, logger.NewLogger("error", "text"))

	if err := u.RunOnce(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := u.RunOnce(); !errors.Is(err, jobErr) {
		t.Fatalf("err=%v, want %v", err, jobErr)
	}
	if calls != 2 {
		t.Fatalf("calls=%d, want 2", calls)
	}
}

func TestUpdater_StartWithoutCron(t *testing.T) {
	u := NewUpdater("", func() error { return nil }, logger.NewLogger("error", "text"))
	if err := u.Start(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	u.Stop()
}

func TestUpdater_StartInvalidCron(t *testing.T) {
	u := NewUpdater("not a cron", func() error { return nil }, logger.NewLogger("error", "text"))
	if err := u.Start(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUpdater_StopOnCancel(t *testing.T) {
	u := NewUpdater("@every 1h", func() error { return nil }, logger.NewLogger("error", "text"))
	ctx, cancel := context.WithCancel(context.Background())
	if err := u.Start(ctx); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cancel()
	u.Stop()
}
