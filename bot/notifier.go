package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"athanbot/bot/common"
	"athanbot/models"

	"github.com/bwmarrin/discordgo"
)

// Notifier delivers prayer notifications over an open Discord session
type Notifier struct {
	session   *discordgo.Session
	adhanPath string
}

func NewNotifier(session *discordgo.Session, adhanPath string) *Notifier {
	return &Notifier{
		session:   session,
		adhanPath: adhanPath,
	}
}

// NotifyPrayer sends the prayer embed to the guild's subscribed channel,
// mentioning the ping role when one is configured
func (n *Notifier) NotifyPrayer(ctx context.Context, cfg *models.GuildConfig, prayer models.Prayer, at time.Time) bool {
	if cfg.ChannelID == nil {
		return false
	}

	message := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{notificationEmbed(prayer, at, cfg)},
	}
	if cfg.PingRoleID != nil {
		message.Content = fmt.Sprintf("<@&%d>", *cfg.PingRoleID)
	}

	channelID := strconv.FormatInt(*cfg.ChannelID, 10)
	if _, err := n.session.ChannelMessageSendComplex(channelID, message); err != nil {
		log.WithFields(log.Fields{
			"guild":   cfg.GuildID,
			"channel": channelID,
			"prayer":  prayer,
			"error":   err,
		}).Error("Failed to send prayer notification")
		return false
	}

	log.WithFields(log.Fields{
		"guild":  cfg.GuildID,
		"prayer": prayer,
	}).Info("Sent prayer notification")
	return true
}

func notificationEmbed(prayer models.Prayer, at time.Time, cfg *models.GuildConfig) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🕌 %s Prayer Time", prayer),
		Description: fmt.Sprintf("It is now time for %s prayer.", prayer),
		Color:       0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Time", Value: common.FormatClock(at), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Athan Bot • May Allah accept your prayers"},
		Timestamp: at.Format(time.RFC3339),
	}

	if offset := cfg.OffsetFor(prayer); offset != 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Offset", Value: common.FormatOffset(offset), Inline: true,
		})
	}

	return embed
}
