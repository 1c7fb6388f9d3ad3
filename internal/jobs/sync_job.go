// Package jobs tareas en segundo plano del servidor.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Refresher lo que el job recarga (el store).
type Refresher interface {
	Refresh(ctx context.Context)
}

// SyncScheduler recarga periódicamente el store para traer cambios hechos desde otros clientes.
type SyncScheduler struct {
	scheduler gocron.Scheduler
	target    Refresher
	log       zerolog.Logger
	cancel    context.CancelFunc
}

// NewSyncScheduler registra el job de recarga cada interval. Interval debe ser positivo.
func NewSyncScheduler(target Refresher, interval time.Duration, log zerolog.Logger) (*SyncScheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("jobs: intervalo de sincronización inválido: %s", interval)
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("jobs: crear scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	js := &SyncScheduler{scheduler: scheduler, target: target, log: log, cancel: cancel}

	// Una recarga lenta no se encima con la siguiente.
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.sync, ctx),
		gocron.WithName("store-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("jobs: registrar store-sync: %w", err)
	}
	return js, nil
}

func (js *SyncScheduler) sync(ctx context.Context) {
	start := time.Now()
	js.target.Refresh(ctx)
	js.log.Debug().Dur("elapsed", time.Since(start)).Msg("store sincronizado")
}

// Start arranca el scheduler.
func (js *SyncScheduler) Start() {
	js.log.Info().Msg("iniciando sincronización periódica del store")
	js.scheduler.Start()
}

// Stop detiene el scheduler y cancela la recarga en curso.
func (js *SyncScheduler) Stop() error {
	js.cancel()
	return js.scheduler.Shutdown()
}
