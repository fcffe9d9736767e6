// workers/sweeper.go
package workers

import (
	"context"
	"log"
	"time"

	"pet-empire-bot/services"

	"github.com/go-co-op/gocron/v2"
)

// Sweeper drives the time-based game loop: every minute it resolves due
// missions and expires stale trade offers. Each item is handled in its own
// transaction by the services, so one bad record never blocks the batch.
type Sweeper struct {
	Missions *services.MissionService
	Trades   *services.TradeService

	sched gocron.Scheduler
}

func NewSweeper(missions *services.MissionService, trades *services.TradeService) *Sweeper {
	return &Sweeper{Missions: missions, Trades: trades}
}

// Start schedules the sweep and blocks until ctx is cancelled.
func (w *Sweeper) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.sched = sched

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(w.Sweep),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Println("✅ Sweeper running (every 1m)")

	<-ctx.Done()
	log.Println("Stopping sweeper...")
	return sched.Shutdown()
}

// Sweep runs one pass. Exposed so tests and admin tooling can trigger it
// without the scheduler.
func (w *Sweeper) Sweep() {
	w.Missions.ResolveDue()
	w.Trades.ExpireDue()
}
