package bot

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"athanbot/bot/features/settings"
	"athanbot/bot/features/subscription"
	"athanbot/bot/features/times"
	"athanbot/events"
	"athanbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token     string
	AdhanPath string
}

type Bot struct {
	config    Config
	session   *discordgo.Session
	guildRepo service.GuildConfigRepository
	eventBus  *events.Bus
	notifier  *Notifier

	settingsFeature     *settings.Feature
	subscriptionFeature *subscription.Feature
	timesFeature        *times.Feature
}

func New(config Config, guildRepo service.GuildConfigRepository, userRepo service.UserConfigRepository, timeSource service.TimeSource, queryService service.PrayerQueryService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates

	bot := &Bot{
		config:    config,
		session:   dg,
		guildRepo: guildRepo,
		eventBus:  eventBus,
		notifier:  NewNotifier(dg, config.AdhanPath),

		settingsFeature:     settings.NewFeature(guildRepo, userRepo, timeSource),
		subscriptionFeature: subscription.NewFeature(guildRepo, eventBus),
		timesFeature:        times.NewFeature(guildRepo, userRepo, queryService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Track guilds kicking the bot so their loops stop
	dg.AddHandler(bot.handleGuildDelete)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Notifier exposes the notifier bound to the live session for the scheduler
func (b *Bot) Notifier() *Notifier {
	return b.notifier
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "setup":
		b.settingsFeature.HandleSetup(s, i)
	case "method":
		b.settingsFeature.HandleMethod(s, i)
	case "offset":
		b.settingsFeature.HandleOffset(s, i)
	case "prayers":
		b.settingsFeature.HandlePrayers(s, i)
	case "my-offset":
		b.settingsFeature.HandleMyOffset(s, i)
	case "subscribe":
		b.subscriptionFeature.HandleSubscribe(s, i)
	case "subscribe-voice":
		b.subscriptionFeature.HandleSubscribeVoice(s, i)
	case "unsubscribe":
		b.subscriptionFeature.HandleUnsubscribe(s, i)
	case "next-prayer":
		b.timesFeature.HandleNextPrayer(s, i)
	case "today":
		b.timesFeature.HandleToday(s, i)
	case "status":
		b.timesFeature.HandleStatus(s, i)
	case "test":
		b.handleTest(s, i)
	case "adhan-voice":
		b.handleAdhanVoice(s, i)
	}
}

func (b *Bot) handleGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		// Outage, not a kick
		return
	}

	guildID, err := strconv.ParseInt(g.ID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}

	log.WithField("guild", guildID).Info("Removed from guild")
	b.eventBus.Emit(context.Background(), events.GuildRemovedEvent{GuildID: guildID})
}
