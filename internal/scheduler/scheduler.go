package scheduler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/scheduler/interfaces"
	"resultsd/internal/services"
	"resultsd/internal/structures"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
)

const (
	TargetGrouped = "grouped"
	TargetFlat    = "flat"

	submitTimeout = 30 * time.Second
)

// Scheduler submits a synthetic reading for the configured category every
// quarter hour. Runs never overlap and never take the process down.
type Scheduler struct {
	config  structures.SchedulerConfig
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	results services.ResultServiceInterface
	flat    services.FlatResultServiceInterface
	clock   clockwork.Clock
	loc     *time.Location
	draw    func() int
	cron    *gron.Cron
	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func (s *Scheduler) Init() {
	if !s.config.Enabled {
		s.logger.Infof(providers.TypeScheduler, "Auto-submit disabled")
		return
	}
	s.cron = gron.New()
	s.cron.AddFunc(QuarterHour{}, s.Tick)
	s.cron.Start()
	s.logger.Infof(providers.TypeScheduler, "Auto-submit for %s starts at %s", s.config.CategoryName,
		QuarterHour{}.Next(s.clock.Now().In(s.loc)).Format("15:04"))
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	s.cancel()
}

func (s *Scheduler) Tick() {
	if !s.running.CompareAndSwap(false, true) {
		s.metrics.IncSchedulerRuns("skipped")
		s.logger.Warnf(providers.TypeScheduler, "Previous auto-submit still running, tick skipped")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(s.ctx, submitTimeout)
	defer cancel()

	now := s.clock.Now().In(s.loc)
	if err := s.submit(ctx, now); err != nil {
		s.metrics.IncSchedulerRuns("failed")
		s.logger.Errorf(providers.TypeScheduler, "Auto-submit at %s failed: %s", now.Format("15:04"), err)
		return
	}
	s.metrics.IncSchedulerRuns("submitted")
}

func (s *Scheduler) submit(ctx context.Context, now time.Time) error {
	date := now.Format(models.DateLayout)
	at := now.Format("15:04")
	number := models.NumberString(fmt.Sprintf("%02d", s.draw()))
	next := nextQuarter(now).Format("3:04 pm")

	if s.config.Target == TargetFlat {
		_, outcome, err := s.flat.Upload(ctx, models.FlatUploadRequest{
			CategoryName: s.config.CategoryName,
			Date:         date,
			Time:         at,
			Number:       number,
			Mode:         s.config.Mode,
		})
		if err != nil {
			return err
		}
		s.logger.Infof(providers.TypeScheduler, "Auto-submitted %s at %s to flat results (%s)", number, at, outcome)
		return nil
	}

	_, err := s.results.UpsertReading(ctx, models.UpsertInput{
		CategoryName:   s.config.CategoryName,
		Date:           date,
		Time:           at,
		Number:         number,
		NextResultTime: next,
		Key:            s.config.Key,
		Mode:           s.config.Mode,
	})
	if err != nil {
		return err
	}
	s.logger.Infof(providers.TypeScheduler, "Auto-submitted %s at %s, next at %s", number, at, next)
	return nil
}

func NewScheduler(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, results services.ResultServiceInterface, flat services.FlatResultServiceInterface, clock clockwork.Clock, loc *time.Location) interfaces.SchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		config:  conf.Scheduler,
		logger:  logger,
		metrics: metrics,
		results: results,
		flat:    flat,
		clock:   clock,
		loc:     loc,
		draw:    func() int { return rand.IntN(99) + 1 },
		ctx:     ctx,
		cancel:  cancel,
	}
}
