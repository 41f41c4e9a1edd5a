package settings

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"athanbot/bot/common"
	"athanbot/models"
	"athanbot/timesource"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const maxOffsetMinutes = 120

// HandleSetup handles the /setup command
func (f *Feature) HandleSetup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	var city, country, tzOverride string
	daylightSaving := false
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "city":
			city = opt.StringValue()
		case "country":
			country = opt.StringValue()
		case "daylight_saving":
			daylightSaving = opt.BoolValue()
		case "timezone":
			tzOverride = opt.StringValue()
		}
	}

	if city == "" {
		common.RespondWithError(s, i, "❌ City is required")
		return
	}

	timezone := tzOverride
	if timezone == "" {
		timezone = timesource.GuessTimezone(city, country)
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		common.RespondWithError(s, i, fmt.Sprintf("❌ Unknown timezone `%s`", timezone))
		return
	}

	// Verifying the city against the time source can take a moment
	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Failed to defer setup response: %v", err)
		return
	}

	ctx := context.Background()

	cfg, err := f.guildRepo.Get(ctx, guildID)
	if err != nil {
		log.Errorf("Failed to load guild config: %v", err)
		common.FollowUpWithError(s, i, "❌ Failed to save settings")
		return
	}
	if cfg == nil {
		cfg = models.NewGuildConfig(guildID)
	}

	cfg.Location = models.CityLocation(city, country, daylightSaving)
	cfg.Timezone = timezone

	// A failed lookup is not fatal, the city may still resolve later
	now := time.Now()
	if loc, err := time.LoadLocation(timezone); err == nil {
		today := now.In(loc).Format("2006-01-02")
		if _, err := f.timeSource.Fetch(ctx, cfg.Location, today, timezone, cfg.CalculationMethod); err != nil {
			log.WithFields(log.Fields{
				"city":  city,
				"error": err,
			}).Warn("Could not verify city against time source")
		}
	}

	if err := f.guildRepo.Upsert(ctx, cfg); err != nil {
		log.Errorf("Failed to save guild config: %v", err)
		common.FollowUpWithError(s, i, "❌ Failed to save settings")
		return
	}

	if _, err := common.FollowUpWithEmbed(s, i, setupSuccessEmbed(cfg), false); err != nil {
		log.Errorf("Failed to respond to setup: %v", err)
	}
}

// HandleMethod handles the /method command
func (f *Feature) HandleMethod(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	cfg, ok := f.requireConfig(s, i)
	if !ok {
		return
	}

	method := models.CalculationMethod(i.ApplicationCommandData().Options[0].StringValue())
	if !method.Valid() {
		common.RespondWithError(s, i, "❌ Unknown calculation method")
		return
	}

	cfg.CalculationMethod = method
	if err := f.guildRepo.Upsert(context.Background(), cfg); err != nil {
		log.Errorf("Failed to save guild config: %v", err)
		common.RespondWithError(s, i, "❌ Failed to save settings")
		return
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Calculation method set to **%s**", method.Name()), false); err != nil {
		log.Errorf("Failed to respond to method: %v", err)
	}
}

// HandleOffset handles the /offset command
func (f *Feature) HandleOffset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	cfg, ok := f.requireConfig(s, i)
	if !ok {
		return
	}

	var prayerName string
	var minutes int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "prayer":
			prayerName = opt.StringValue()
		case "minutes":
			minutes = opt.IntValue()
		}
	}

	prayer, ok := models.ParsePrayer(prayerName)
	if !ok || !prayer.Notifiable() {
		common.RespondWithError(s, i, "❌ Unknown prayer")
		return
	}
	if minutes < -maxOffsetMinutes || minutes > maxOffsetMinutes {
		common.RespondWithError(s, i, fmt.Sprintf("❌ Offset must be between -%d and %d minutes", maxOffsetMinutes, maxOffsetMinutes))
		return
	}

	cfg.SetOffset(prayer, int(minutes))
	if err := f.guildRepo.Upsert(context.Background(), cfg); err != nil {
		log.Errorf("Failed to save guild config: %v", err)
		common.RespondWithError(s, i, "❌ Failed to save settings")
		return
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("**%s** offset set to %s", prayer, common.FormatOffset(int(minutes))), false); err != nil {
		log.Errorf("Failed to respond to offset: %v", err)
	}
}

// HandlePrayers handles the /prayers enable and /prayers disable subcommands
func (f *Feature) HandlePrayers(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	cfg, ok := f.requireConfig(s, i)
	if !ok {
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}
	sub := options[0]

	prayer, pok := models.ParsePrayer(sub.Options[0].StringValue())
	if !pok || !prayer.Notifiable() {
		common.RespondWithError(s, i, "❌ Unknown prayer")
		return
	}

	var message string
	switch sub.Name {
	case "enable":
		cfg.EnablePrayer(prayer)
		message = fmt.Sprintf("Notifications for **%s** enabled", prayer)
	case "disable":
		cfg.DisablePrayer(prayer)
		message = fmt.Sprintf("Notifications for **%s** disabled", prayer)
	default:
		return
	}

	if err := f.guildRepo.Upsert(context.Background(), cfg); err != nil {
		log.Errorf("Failed to save guild config: %v", err)
		common.RespondWithError(s, i, "❌ Failed to save settings")
		return
	}

	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Failed to respond to prayers: %v", err)
	}
}

// requireConfig loads the guild's config, responding with a setup hint when
// the guild never ran /setup
func (f *Feature) requireConfig(s *discordgo.Session, i *discordgo.InteractionCreate) (*models.GuildConfig, bool) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return nil, false
	}

	cfg, err := f.guildRepo.Get(context.Background(), guildID)
	if err != nil {
		log.Errorf("Failed to load guild config: %v", err)
		common.RespondWithError(s, i, "❌ Failed to load settings")
		return nil, false
	}
	if cfg == nil {
		common.RespondWithError(s, i, "❌ Run `/setup` first to configure your location")
		return nil, false
	}
	return cfg, true
}

func setupSuccessEmbed(cfg *models.GuildConfig) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Setup Complete",
		Description: "Your prayer time settings are saved!",
		Color:       0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Location", Value: cfg.Location.DisplayName(), Inline: true},
			{Name: "Timezone", Value: cfg.Timezone, Inline: true},
			{Name: "Method", Value: cfg.CalculationMethod.Name(), Inline: true},
			{
				Name: "Next Steps",
				Value: "1️⃣ Use `/subscribe` to enable notifications\n" +
					"2️⃣ Use `/next-prayer` to see prayer times\n" +
					"3️⃣ Use `/offset` to adjust timings",
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Athan Bot"},
	}
}
