package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"athanbot/models"

	log "github.com/sirupsen/logrus"
)

const (
	// graceWindow is how far in the past a prayer instant may lie and still
	// fire. It covers notifications that came due during a brief restart:
	// anything older is treated as missed for the day, which bounds how late
	// a notification can ever arrive.
	graceWindow = 15 * time.Minute

	// lookAhead is how far in the future a prayer instant may lie and still
	// fire. It catches the instant as it arrives despite the coarse poll grain.
	lookAhead = 60 * time.Second
)

// Scheduler runs one independent polling loop per subscribed guild. Each tick
// recomputes today's effective prayer instants and notifies each due prayer
// exactly once per calendar day, using the durable sent log to survive restarts.
type Scheduler struct {
	guildRepo  GuildConfigRepository
	sentRepo   SentNotificationRepository
	timeSource TimeSource
	notifier   Notifier
	interval   time.Duration
	now        func() time.Time

	mu    sync.Mutex
	loops map[int64]context.CancelFunc
	root  context.Context
}

// NewScheduler creates a scheduler polling at the given interval
func NewScheduler(guildRepo GuildConfigRepository, sentRepo SentNotificationRepository, timeSource TimeSource, notifier Notifier, interval time.Duration) *Scheduler {
	return &Scheduler{
		guildRepo:  guildRepo,
		sentRepo:   sentRepo,
		timeSource: timeSource,
		notifier:   notifier,
		interval:   interval,
		now:        time.Now,
		loops:      make(map[int64]context.CancelFunc),
	}
}

// Start launches a loop for every subscribed guild. The context bounds the
// lifetime of every loop started now or later.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.root = ctx
	s.mu.Unlock()

	guildIDs, err := s.guildRepo.SubscribedGuildIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subscribed guilds: %w", err)
	}

	for _, guildID := range guildIDs {
		s.ScheduleGuild(guildID)
	}

	log.WithField("guilds", len(guildIDs)).Info("Scheduler started")
	return nil
}

// ScheduleGuild starts a loop for a guild. Idempotent: an already running
// loop is cancelled first, so rapid resubscribes never leave two loops alive.
func (s *Scheduler) ScheduleGuild(guildID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.loops[guildID]; ok {
		cancel()
	}

	root := s.root
	if root == nil {
		root = context.Background()
	}
	ctx, cancel := context.WithCancel(root)
	s.loops[guildID] = cancel

	go s.guildLoop(ctx, guildID)
	log.WithField("guild", guildID).Info("Scheduled guild loop")
}

// UnscheduleGuild cancels a guild's loop, releasing it promptly
func (s *Scheduler) UnscheduleGuild(guildID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.loops[guildID]; ok {
		cancel()
		delete(s.loops, guildID)
		log.WithField("guild", guildID).Info("Unscheduled guild loop")
	}
}

// Stop cancels every guild loop
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for guildID, cancel := range s.loops {
		cancel()
		delete(s.loops, guildID)
	}
	log.Info("Scheduler stopped")
}

// guildLoop is the polling loop for a single guild. It only ends on
// cancellation: a failed tick is logged and retried on the next wake.
func (s *Scheduler) guildLoop(ctx context.Context, guildID int64) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.processGuild(ctx, guildID); err != nil {
			log.WithField("guild", guildID).Errorf("Guild tick failed: %v", err)
		}

		select {
		case <-ctx.Done():
			log.WithField("guild", guildID).Debug("Guild loop cancelled")
			return
		case <-ticker.C:
		}
	}
}

// processGuild runs one tick: reload config, resolve today in the guild's
// zone, fetch times, and evaluate each enabled prayer in order
func (s *Scheduler) processGuild(ctx context.Context, guildID int64) error {
	// Configuration may have changed since the last tick, always reload
	cfg, err := s.guildRepo.Get(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to load guild config: %w", err)
	}
	if cfg == nil || !cfg.IsSubscribed() || cfg.Location == nil {
		// Dormant guild: valid steady state, no side effects
		return nil
	}

	// Today must be resolved in the guild's zone, not the process's
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid guild timezone %q: %w", cfg.Timezone, err)
	}
	today := s.now().In(loc).Format("2006-01-02")

	times, err := s.timeSource.Fetch(ctx, cfg.Location, today, cfg.Timezone, cfg.CalculationMethod)
	if err != nil {
		log.WithField("guild", guildID).Debugf("Time source fetch failed: %v", err)
		return nil
	}
	if times == nil {
		// Transient remote outage, the next tick retries
		return nil
	}

	for _, prayer := range cfg.EnabledPrayers {
		if !prayer.Notifiable() {
			continue
		}
		if err := s.checkAndSend(ctx, cfg, prayer, times, today); err != nil {
			return err
		}
	}

	return nil
}

// checkAndSend applies the send decision for one (guild, prayer, date)
func (s *Scheduler) checkAndSend(ctx context.Context, cfg *models.GuildConfig, prayer models.Prayer, times *models.PrayerTimes, date string) error {
	sent, err := s.sentRepo.WasSent(ctx, cfg.GuildID, prayer, date)
	if err != nil {
		return fmt.Errorf("failed to check sent log for %s: %w", prayer, err)
	}
	if sent {
		return nil
	}

	instant, err := times.InstantFor(prayer, cfg.OffsetFor(prayer))
	if err != nil {
		return fmt.Errorf("failed to compute %s instant: %w", prayer, err)
	}

	delta := instant.Sub(s.now())
	if delta < -graceWindow || delta > lookAhead {
		return nil
	}

	log.WithFields(log.Fields{
		"guild":  cfg.GuildID,
		"prayer": prayer,
		"at":     instant.Format("15:04"),
	}).Info("Sending prayer notification")

	// Delivery failures are a presentation concern: the sent record is
	// written regardless, preserving at-most-once per day
	if delivered := s.notifier.NotifyPrayer(ctx, cfg, prayer, instant); !delivered {
		log.WithFields(log.Fields{"guild": cfg.GuildID, "prayer": prayer}).
			Warn("Text notification was not delivered")
	}
	if cfg.VoiceChannelID != nil {
		if started := s.notifier.AnnounceVoice(ctx, cfg, prayer); !started {
			log.WithFields(log.Fields{"guild": cfg.GuildID, "prayer": prayer}).
				Warn("Voice announcement did not start")
		}
	}

	record := &models.SentNotification{
		GuildID:       cfg.GuildID,
		Prayer:        prayer,
		Date:          date,
		ScheduledTime: instant.Format("15:04"),
	}
	if err := s.sentRepo.Record(ctx, record); err != nil {
		return fmt.Errorf("failed to record sent notification for %s: %w", prayer, err)
	}

	return nil
}
