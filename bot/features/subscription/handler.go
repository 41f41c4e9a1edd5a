package subscription

import (
	"context"
	"fmt"
	"strconv"

	"athanbot/bot/common"
	"athanbot/events"
	"athanbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleSubscribe handles the /subscribe command
func (f *Feature) HandleSubscribe(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	cfg, ok := f.requireConfig(s, i)
	if !ok {
		return
	}

	channelID := i.ChannelID
	var pingRoleID *int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "channel":
			channelID = opt.ChannelValue(s).ID
		case "ping_role":
			roleID, err := strconv.ParseInt(opt.RoleValue(s, i.GuildID).ID, 10, 64)
			if err != nil {
				log.Errorf("Failed to parse role ID: %v", err)
				common.RespondWithError(s, i, "❌ Invalid role selected")
				return
			}
			pingRoleID = &roleID
		}
	}

	channel, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse channel ID %s: %v", channelID, err)
		common.RespondWithError(s, i, "❌ Invalid channel")
		return
	}

	cfg.ChannelID = &channel
	cfg.PingRoleID = pingRoleID

	if err := f.guildRepo.Upsert(context.Background(), cfg); err != nil {
		log.Errorf("Failed to save guild config: %v", err)
		common.RespondWithError(s, i, "❌ Failed to subscribe")
		return
	}

	f.eventBus.Emit(context.Background(), events.GuildSubscribedEvent{
		GuildID:   cfg.GuildID,
		ChannelID: channel,
	})

	message := fmt.Sprintf("Prayer notifications will be sent to <#%d>", channel)
	if pingRoleID != nil {
		message += fmt.Sprintf(" mentioning <@&%d>", *pingRoleID)
	}
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Failed to respond to subscribe: %v", err)
	}
}

// HandleSubscribeVoice handles the /subscribe-voice command
func (f *Feature) HandleSubscribeVoice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	cfg, ok := f.requireConfig(s, i)
	if !ok {
		return
	}

	voiceChannel, err := strconv.ParseInt(i.ApplicationCommandData().Options[0].ChannelValue(s).ID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse voice channel ID: %v", err)
		common.RespondWithError(s, i, "❌ Invalid voice channel")
		return
	}

	cfg.VoiceChannelID = &voiceChannel

	if err := f.guildRepo.Upsert(context.Background(), cfg); err != nil {
		log.Errorf("Failed to save guild config: %v", err)
		common.RespondWithError(s, i, "❌ Failed to subscribe")
		return
	}

	message := fmt.Sprintf("The adhan will play in <#%d> at prayer times", voiceChannel)
	if !cfg.IsSubscribed() {
		message += ". Use `/subscribe` to enable notifications"
	}
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Failed to respond to subscribe-voice: %v", err)
	}
}

// HandleUnsubscribe handles the /unsubscribe command
func (f *Feature) HandleUnsubscribe(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	cfg, ok := f.requireConfig(s, i)
	if !ok {
		return
	}

	if !cfg.IsSubscribed() && cfg.VoiceChannelID == nil {
		common.RespondWithError(s, i, "❌ This server is not subscribed")
		return
	}

	cfg.ChannelID = nil
	cfg.VoiceChannelID = nil
	cfg.PingRoleID = nil

	if err := f.guildRepo.Upsert(context.Background(), cfg); err != nil {
		log.Errorf("Failed to save guild config: %v", err)
		common.RespondWithError(s, i, "❌ Failed to unsubscribe")
		return
	}

	f.eventBus.Emit(context.Background(), events.GuildUnsubscribedEvent{GuildID: cfg.GuildID})

	if err := common.RespondWithSuccess(s, i, "Prayer notifications stopped for this server", false); err != nil {
		log.Errorf("Failed to respond to unsubscribe: %v", err)
	}
}

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
