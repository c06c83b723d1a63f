package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanScanner struct {
	calls chan struct{}
	err   error
}

func (s *chanScanner) Run(ctx context.Context) (int, error) {
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return 0, errors.New("sin deadline")
	}
	s.calls <- struct{}{}
	return 2, s.err
}

func TestScheduler_EjecutaEscaneoAlArrancar(t *testing.T) {
	sc := New(zerolog.Nop())
	scanner := &chanScanner{calls: make(chan struct{}, 4)}
	require.NoError(t, sc.ScheduleLowStockScan(scanner, time.Hour))

	sc.Start()
	defer sc.Stop()

	select {
	case <-scanner.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("el escaneo no se ejecutó")
	}
}

func TestScheduler_ErrorNoDetiene(t *testing.T) {
	sc := New(zerolog.Nop())
	scanner := &chanScanner{calls: make(chan struct{}, 4), err: errors.New("db caída")}
	require.NoError(t, sc.ScheduleLowStockScan(scanner, time.Hour))

	sc.Start()
	defer sc.Stop()

	select {
	case <-scanner.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("el escaneo no se ejecutó")
	}
}

func TestScheduler_IntervaloInvalido(t *testing.T) {
	sc := New(zerolog.Nop())
	assert.Error(t, sc.ScheduleLowStockScan(&chanScanner{}, 0))
}
