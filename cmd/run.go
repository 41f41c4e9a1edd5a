package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"athanbot/bot"
	"athanbot/config"
	"athanbot/database"
	"athanbot/events"
	"athanbot/repository"
	"athanbot/service"
	"athanbot/timesource"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting athan bot...")

	// Load configuration
	cfg := config.Get()

	// Apply any pending migrations before serving reads or writes
	log.Println("Running database migrations...")
	if err := database.RunMigrationsWithURL(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize repositories
	guildRepo := repository.NewGuildConfigRepository(db)
	sentRepo := repository.NewSentNotificationRepository(db)
	userRepo := repository.NewUserConfigRepository(db)

	// Initialize the cached prayer time source
	timeSource := timesource.NewCachedSource(timesource.NewClient(cfg.MuslimSalatBaseURL, cfg.MuslimSalatAPIKey))

	// Initialize services
	queryService := service.NewPrayerQueryService(timeSource)

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:     cfg.DiscordToken,
		AdhanPath: cfg.AdhanPath,
	}
	discordBot, err := bot.New(botConfig, guildRepo, userRepo, timeSource, queryService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Initialize the notification scheduler on the live session
	scheduler := service.NewScheduler(guildRepo, sentRepo, timeSource, discordBot.Notifier(), cfg.PollInterval)

	// Subscription changes start and stop guild loops
	eventBus.Subscribe(events.EventTypeGuildSubscribed, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.GuildSubscribedEvent); ok {
			scheduler.ScheduleGuild(e.GuildID)
		}
	})
	eventBus.Subscribe(events.EventTypeGuildUnsubscribed, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.GuildUnsubscribedEvent); ok {
			scheduler.UnscheduleGuild(e.GuildID)
		}
	})
	eventBus.Subscribe(events.EventTypeGuildRemoved, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.GuildRemovedEvent); ok {
			scheduler.UnscheduleGuild(e.GuildID)
		}
	})

	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Stop guild loops before tearing down the session they dispatch through
	scheduler.Stop()

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
