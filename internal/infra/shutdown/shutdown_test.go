package shutdown_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/replica-alerter/internal/infra/shutdown"
)

type fakeShutdowner struct {
	name     string
	err      error
	shutDown bool
}

func (f *fakeShutdowner) Name() string { return f.name }

func (f *fakeShutdowner) Shutdown(_ context.Context) error {
	f.shutDown = true

	return f.err
}

func TestHandler_HandleSignals(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("signal cancels context", func(t *testing.T) {
		t.Parallel()

		signals := make(chan os.Signal, 1)
		signals <- syscall.SIGTERM

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		handler := shutdown.New(logger, signals)

		done := make(chan struct{})

		go func() {
			handler.HandleSignals(ctx, cancel)
			close(done)
		}()

		select {
		case <-ctx.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("context was not cancelled after signal")
		}

		<-done
	})

	t.Run("context done exits without cancel", func(t *testing.T) {
		t.Parallel()

		signals := make(chan os.Signal, 1)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		handler := shutdown.New(logger, signals)

		done := make(chan struct{})

		go func() {
			handler.HandleSignals(ctx, func() {})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not exit on context done")
		}
	})
}

func TestGracefulShutdown(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("all components shut down", func(t *testing.T) {
		t.Parallel()

		first := &fakeShutdowner{name: "first"}
		second := &fakeShutdowner{name: "second"}

		err := shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{first, second})
		require.NoError(t, err)
		require.True(t, first.shutDown)
		require.True(t, second.shutDown)
	})

	t.Run("one failure does not stop the rest", func(t *testing.T) {
		t.Parallel()

		failing := &fakeShutdowner{name: "failing", err: errors.New("boom")}
		healthy := &fakeShutdowner{name: "healthy"}

		err := shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{healthy, failing})
		require.Error(t, err)
		require.True(t, healthy.shutDown)
		require.True(t, failing.shutDown)
	})

	t.Run("no components is a no-op", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, shutdown.GracefulShutdown(t.Context(), logger, nil))
	})
}
