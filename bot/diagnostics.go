package bot

import (
	"context"
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"athanbot/bot/common"
	"athanbot/models"

	"github.com/bwmarrin/discordgo"
)

// handleTest sends a sample notification through the guild's configured
// channels so admins can verify the bot's wiring without waiting for a prayer.
func (b *Bot) handleTest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cfg, ok := b.requireConfig(s, i)
	if !ok {
		return
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Failed to defer test response: %v", err)
		return
	}

	if _, err := common.FollowUpWithEmbed(s, i, testEmbed(cfg), false); err != nil {
		log.Errorf("Failed to send test notification: %v", err)
	}

	// Voice plays regardless of whether the text message went through
	if cfg.VoiceChannelID != nil {
		guildID := strconv.FormatInt(cfg.GuildID, 10)
		channelID := strconv.FormatInt(*cfg.VoiceChannelID, 10)
		if !b.notifier.playAdhan(context.Background(), guildID, channelID) {
			log.WithField("guild", cfg.GuildID).Error("Test adhan playback failed to start")
		}
	}
}

// handleAdhanVoice plays the adhan on demand, in the given voice channel or
// the one the invoking user currently sits in.
func (b *Bot) handleAdhanVoice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Failed to defer adhan-voice response: %v", err)
		return
	}

	var channelID string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			channelID = opt.ChannelValue(s).ID
		}
	}
	if channelID == "" {
		vs, err := s.State.VoiceState(i.GuildID, i.Member.User.ID)
		if err != nil || vs == nil || vs.ChannelID == "" {
			common.FollowUpWithError(s, i, "❌ You must be in a voice channel or specify one")
			return
		}
		channelID = vs.ChannelID
	}

	if _, err := os.Stat(b.config.AdhanPath); err != nil {
		log.Errorf("Adhan audio missing at %s: %v", b.config.AdhanPath, err)
		common.FollowUpWithError(s, i, "⚠️ Adhan audio file is not available")
		return
	}

	if !b.notifier.playAdhan(context.Background(), i.GuildID, channelID) {
		common.FollowUpWithError(s, i, "❌ Failed to play the adhan, check the voice channel permissions")
		return
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("🔊 Playing the adhan in <#%s>", channelID),
	}); err != nil {
		log.Errorf("Failed to respond to adhan-voice: %v", err)
	}
}

func (b *Bot) requireConfig(s *discordgo.Session, i *discordgo.InteractionCreate) (*models.GuildConfig, bool) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return nil, false
	}

	cfg, err := b.guildRepo.Get(context.Background(), guildID)
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

func testEmbed(cfg *models.GuildConfig) *discordgo.MessageEmbed {
	city := "Unknown"
	if cfg.Location != nil && cfg.Location.City != "" {
		city = cfg.Location.City
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🧪 Test Prayer Notification",
		Description: "Testing prayer notifications for this server.",
		Color:       0xf1c40f,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Location", Value: city, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Test Mode • This is a test notification"},
	}

	if cfg.VoiceChannelID != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Voice Adhan", Value: fmt.Sprintf("🔊 Playing in <#%d>", *cfg.VoiceChannelID), Inline: true,
		})
	}

	return embed
}
