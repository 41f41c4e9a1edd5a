package service

import (
	"context"
	"time"

	"athanbot/models"

	"github.com/stretchr/testify/mock"
)

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) Get(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) Upsert(ctx context.Context, cfg *models.GuildConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockGuildConfigRepository) SubscribedGuildIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockSentNotificationRepository is a mock implementation of SentNotificationRepository
type MockSentNotificationRepository struct {
	mock.Mock
}

func (m *MockSentNotificationRepository) Record(ctx context.Context, record *models.SentNotification) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSentNotificationRepository) WasSent(ctx context.Context, guildID int64, prayer models.Prayer, date string) (bool, error) {
	args := m.Called(ctx, guildID, prayer, date)
	return args.Bool(0), args.Error(1)
}

// MockUserConfigRepository is a mock implementation of UserConfigRepository
type MockUserConfigRepository struct {
	mock.Mock
}

func (m *MockUserConfigRepository) Get(ctx context.Context, userID int64) (*models.UserConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserConfig), args.Error(1)
}

func (m *MockUserConfigRepository) Upsert(ctx context.Context, cfg *models.UserConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// MockTimeSource is a mock implementation of TimeSource
type MockTimeSource struct {
	mock.Mock
}

func (m *MockTimeSource) Fetch(ctx context.Context, location *models.Location, date string, timezone string, method models.CalculationMethod) (*models.PrayerTimes, error) {
	args := m.Called(ctx, location, date, timezone, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PrayerTimes), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyPrayer(ctx context.Context, cfg *models.GuildConfig, prayer models.Prayer, at time.Time) bool {
	args := m.Called(ctx, cfg, prayer, at)
	return args.Bool(0)
}

func (m *MockNotifier) AnnounceVoice(ctx context.Context, cfg *models.GuildConfig, prayer models.Prayer) bool {
	args := m.Called(ctx, cfg, prayer)
	return args.Bool(0)
}
