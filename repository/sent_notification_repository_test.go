package repository

import (
	"context"
	"testing"

	"athanbot/models"
	"athanbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentNotificationRepository_RecordAndWasSent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewSentNotificationRepository(testDB.DB)
	ctx := context.Background()

	sent, err := repo.WasSent(ctx, 1234, models.PrayerFajr, "2025-06-01")
	require.NoError(t, err)
	assert.False(t, sent)

	record := &models.SentNotification{
		GuildID:       1234,
		Prayer:        models.PrayerFajr,
		Date:          "2025-06-01",
		ScheduledTime: "06:03",
	}
	require.NoError(t, repo.Record(ctx, record))

	sent, err = repo.WasSent(ctx, 1234, models.PrayerFajr, "2025-06-01")
	require.NoError(t, err)
	assert.True(t, sent)

	// Other prayers, dates and guilds stay unaffected
	sent, err = repo.WasSent(ctx, 1234, models.PrayerDhuhr, "2025-06-01")
	require.NoError(t, err)
	assert.False(t, sent)

	sent, err = repo.WasSent(ctx, 1234, models.PrayerFajr, "2025-06-02")
	require.NoError(t, err)
	assert.False(t, sent)

	sent, err = repo.WasSent(ctx, 5678, models.PrayerFajr, "2025-06-01")
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestSentNotificationRepository_DuplicateRecordIsNoop(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewSentNotificationRepository(testDB.DB)
	ctx := context.Background()

	record := &models.SentNotification{
		GuildID:       1234,
		Prayer:        models.PrayerIsha,
		Date:          "2025-06-01",
		ScheduledTime: "20:00",
	}

	require.NoError(t, repo.Record(ctx, record))
	// A crash-replayed insert must not error or duplicate
	require.NoError(t, repo.Record(ctx, record))

	sent, err := repo.WasSent(ctx, 1234, models.PrayerIsha, "2025-06-01")
	require.NoError(t, err)
	assert.True(t, sent)
}
