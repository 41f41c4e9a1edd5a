package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"athanbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func qatarConfig(t *testing.T) *models.GuildConfig {
	t.Helper()

	channelID := int64(900)
	cfg := models.NewGuildConfig(1234)
	cfg.Location = models.CityLocation("Doha", "Qatar", false)
	cfg.Timezone = "Asia/Qatar"
	cfg.ChannelID = &channelID
	return cfg
}

func qatarTimes() *models.PrayerTimes {
	return &models.PrayerTimes{
		Date:     "2025-06-01",
		Fajr:     "05:58",
		Sunrise:  "06:25",
		Dhuhr:    "12:44",
		Asr:      "16:10",
		Maghrib:  "18:30",
		Isha:     "20:00",
		Timezone: "Asia/Qatar",
	}
}

func newTestScheduler(guildRepo *MockGuildConfigRepository, sentRepo *MockSentNotificationRepository, timeSource *MockTimeSource, notifier *MockNotifier, now time.Time) *Scheduler {
	s := NewScheduler(guildRepo, sentRepo, timeSource, notifier, time.Minute)
	s.now = func() time.Time { return now }
	return s
}

func TestScheduler_FiresInsideWindow(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)
	cfg.SetOffset(models.PrayerFajr, 5)

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)
	// Effective Fajr is 06:03, thirty seconds ahead of now
	now := time.Date(2025, 6, 1, 6, 2, 30, 0, loc)

	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	guildRepo.On("Get", ctx, int64(1234)).Return(cfg, nil)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-01", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(qatarTimes(), nil)
	sentRepo.On("WasSent", ctx, int64(1234), mock.AnythingOfType("models.Prayer"), "2025-06-01").
		Return(false, nil)
	notifier.On("NotifyPrayer", ctx, cfg, models.PrayerFajr, mock.AnythingOfType("time.Time")).
		Return(true).Once()
	sentRepo.On("Record", ctx, mock.MatchedBy(func(r *models.SentNotification) bool {
		return r.GuildID == 1234 &&
			r.Prayer == models.PrayerFajr &&
			r.Date == "2025-06-01" &&
			r.ScheduledTime == "06:03"
	})).Return(nil).Once()

	s := newTestScheduler(guildRepo, sentRepo, timeSource, notifier, now)
	require.NoError(t, s.processGuild(ctx, 1234))

	notifier.AssertExpectations(t)
	sentRepo.AssertExpectations(t)
	// Only Fajr is in window, the other prayers are checked but never fired
	notifier.AssertNumberOfCalls(t, "NotifyPrayer", 1)
}

func TestScheduler_MissedBeyondGraceWindow(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)
	cfg.SetOffset(models.PrayerFajr, 5)

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)
	// Effective Fajr was 06:03, seventeen minutes ago
	now := time.Date(2025, 6, 1, 6, 20, 0, 0, loc)

	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	guildRepo.On("Get", ctx, int64(1234)).Return(cfg, nil)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-01", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(qatarTimes(), nil)
	sentRepo.On("WasSent", ctx, int64(1234), mock.AnythingOfType("models.Prayer"), "2025-06-01").
		Return(false, nil)

	s := newTestScheduler(guildRepo, sentRepo, timeSource, notifier, now)
	require.NoError(t, s.processGuild(ctx, 1234))

	notifier.AssertNotCalled(t, "NotifyPrayer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	sentRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestScheduler_DormantGuildHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)
	cfg.ChannelID = nil // not subscribed

	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	guildRepo.On("Get", ctx, int64(1234)).Return(cfg, nil)

	s := newTestScheduler(guildRepo, sentRepo, timeSource, notifier, time.Now())
	require.NoError(t, s.processGuild(ctx, 1234))

	timeSource.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyPrayer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	sentRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestScheduler_MissingLocationSkipsTick(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)
	cfg.Location = nil

	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	guildRepo.On("Get", ctx, int64(1234)).Return(cfg, nil)

	s := newTestScheduler(guildRepo, sentRepo, timeSource, notifier, time.Now())
	require.NoError(t, s.processGuild(ctx, 1234))

	timeSource.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_AlreadySentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)
	cfg.SetOffset(models.PrayerFajr, 5)

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 6, 2, 30, 0, loc)

	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	guildRepo.On("Get", ctx, int64(1234)).Return(cfg, nil)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-01", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(qatarTimes(), nil)
	// The durable log already carries every prayer for today
	sentRepo.On("WasSent", ctx, int64(1234), mock.AnythingOfType("models.Prayer"), "2025-06-01").
		Return(true, nil)

	s := newTestScheduler(guildRepo, sentRepo, timeSource, notifier, now)
	require.NoError(t, s.processGuild(ctx, 1234))

	notifier.AssertNotCalled(t, "NotifyPrayer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	sentRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestScheduler_DisabledPrayerNeverEvaluated(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)
	cfg.DisablePrayer(models.PrayerFajr)

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)
	// Fajr would be squarely in window if it were enabled
	now := time.Date(2025, 6, 1, 5, 58, 0, 0, loc)

	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	guildRepo.On("Get", ctx, int64(1234)).Return(cfg, nil)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-01", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(qatarTimes(), nil)
	sentRepo.On("WasSent", ctx, int64(1234), mock.AnythingOfType("models.Prayer"), "2025-06-01").
		Return(false, nil)

	s := newTestScheduler(guildRepo, sentRepo, timeSource, notifier, now)
	require.NoError(t, s.processGuild(ctx, 1234))

	sentRepo.AssertNotCalled(t, "WasSent", ctx, int64(1234), models.PrayerFajr, "2025-06-01")
	notifier.AssertNotCalled(t, "NotifyPrayer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_FetchFailureSkipsWholeTick(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)

	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	guildRepo.On("Get", ctx, int64(1234)).Return(cfg, nil)
	timeSource.On("Fetch", ctx, cfg.Location, mock.AnythingOfType("string"), "Asia/Qatar", models.DefaultCalculationMethod).
		Return(nil, errors.New("malformed asr time"))

	s := newTestScheduler(guildRepo, sentRepo, timeSource, notifier, time.Now())
	// Soft failure: no error surfaces, the next tick retries
	require.NoError(t, s.processGuild(ctx, 1234))

	sentRepo.AssertNotCalled(t, "WasSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyPrayer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_DispatchFailureStillRecords(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)
	voiceID := int64(77)
	cfg.VoiceChannelID = &voiceID

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 5, 58, 0, 0, loc)

	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	guildRepo.On("Get", ctx, int64(1234)).Return(cfg, nil)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-01", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(qatarTimes(), nil)
	sentRepo.On("WasSent", ctx, int64(1234), mock.AnythingOfType("models.Prayer"), "2025-06-01").
		Return(false, nil)
	// Text delivery fails, voice starts, the sent record is written anyway
	notifier.On("NotifyPrayer", ctx, cfg, models.PrayerFajr, mock.AnythingOfType("time.Time")).
		Return(false).Once()
	notifier.On("AnnounceVoice", ctx, cfg, models.PrayerFajr).Return(true).Once()
	sentRepo.On("Record", ctx, mock.MatchedBy(func(r *models.SentNotification) bool {
		return r.Prayer == models.PrayerFajr && r.Date == "2025-06-01"
	})).Return(nil).Once()

	s := newTestScheduler(guildRepo, sentRepo, timeSource, notifier, now)
	require.NoError(t, s.processGuild(ctx, 1234))

	notifier.AssertExpectations(t)
	sentRepo.AssertExpectations(t)
}

func TestScheduler_StoreErrorPropagatesToTick(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 5, 58, 0, 0, loc)

	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	guildRepo.On("Get", ctx, int64(1234)).Return(cfg, nil)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-01", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(qatarTimes(), nil)
	sentRepo.On("WasSent", ctx, int64(1234), models.PrayerFajr, "2025-06-01").
		Return(false, errors.New("connection reset"))

	s := newTestScheduler(guildRepo, sentRepo, timeSource, notifier, now)
	err = s.processGuild(ctx, 1234)

	// A store failure must never be treated as "already sent"
	assert.Error(t, err)
	notifier.AssertNotCalled(t, "NotifyPrayer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_ScheduleGuildIsIdempotent(t *testing.T) {
	guildRepo := new(MockGuildConfigRepository)
	sentRepo := new(MockSentNotificationRepository)
	timeSource := new(MockTimeSource)
	notifier := new(MockNotifier)

	// Loops started here are dormant, ticks load a nil config
	guildRepo.On("Get", mock.Anything, int64(42)).Return(nil, nil).Maybe()

	s := NewScheduler(guildRepo, sentRepo, timeSource, notifier, time.Hour)

	s.ScheduleGuild(42)
	s.ScheduleGuild(42)

	s.mu.Lock()
	assert.Len(t, s.loops, 1)
	s.mu.Unlock()

	s.UnscheduleGuild(42)

	s.mu.Lock()
	assert.Empty(t, s.loops)
	s.mu.Unlock()
}
