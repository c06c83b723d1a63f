package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// LowStockScanner lo implementa inventory.LowStockMonitor.
type LowStockScanner interface {
	Run(ctx context.Context) (int, error)
}

// Scheduler tareas periódicas en segundo plano.
type Scheduler struct {
	s   *gocron.Scheduler
	log zerolog.Logger
}

// New crea el planificador en UTC; un escaneo nunca se solapa con el anterior.
func New(log zerolog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{s: s, log: log}
}

// ScheduleLowStockScan registra el escaneo cada every. La primera ejecución es inmediata.
// Cada ejecución tiene un timeout igual al intervalo.
func (sc *Scheduler) ScheduleLowStockScan(scanner LowStockScanner, every time.Duration) error {
	if every <= 0 {
		return fmt.Errorf("scheduler: intervalo inválido %s", every)
	}
	_, err := sc.s.Every(every).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), every)
		defer cancel()

		n, err := scanner.Run(ctx)
		if err != nil {
			sc.log.Error().Err(err).Msg("escaneo de bajo stock falló")
			return
		}
		sc.log.Info().Int("posiciones", n).Msg("escaneo de bajo stock")
	})
	if err != nil {
		return fmt.Errorf("scheduler: low stock scan: %w", err)
	}
	return nil
}

// Start arranca en segundo plano.
func (sc *Scheduler) Start() { sc.s.StartAsync() }

// Stop detiene el planificador; no espera a la tarea en curso.
func (sc *Scheduler) Stop() { sc.s.Stop() }
