package times

import (
	"fmt"
	"time"

	"athanbot/bot/common"
	"athanbot/models"

	"github.com/bwmarrin/discordgo"
)

func nextPrayerEmbed(prayer models.Prayer, at time.Time, cfg *models.GuildConfig) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🕌 Next Prayer: %s", prayer),
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Time", Value: common.FormatClock(at), Inline: true},
			{Name: "In", Value: common.HumanizeDuration(time.Until(at)), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Location: %s", cfg.Location.DisplayName()),
		},
	}

	if offset := cfg.OffsetFor(prayer); offset != 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Offset", Value: common.FormatOffset(offset), Inline: true,
		})
	}

	return embed
}

func todayEmbed(times *models.PrayerTimes, cfg *models.GuildConfig) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🕌 Today's Prayer Times",
		Color: 0xf1c40f,
	}

	// Mark the first prayer still ahead of now
	var next models.Prayer
	now := time.Now()
	for _, prayer := range models.NotifiablePrayers {
		instant, err := times.InstantFor(prayer, cfg.OffsetFor(prayer))
		if err == nil && instant.After(now) {
			next = prayer
			break
		}
	}

	for _, prayer := range models.NotifiablePrayers {
		instant, err := times.InstantFor(prayer, cfg.OffsetFor(prayer))
		if err != nil {
			continue
		}

		name := string(prayer)
		if prayer == next {
			name = "▶️ " + name
		}

		value := common.FormatClock(instant)
		if offset := cfg.OffsetFor(prayer); offset != 0 {
			value += fmt.Sprintf(" (%s)", common.FormatOffset(offset))
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: name, Value: value, Inline: false,
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Location: %s • Method: %s", cfg.Location.DisplayName(), cfg.CalculationMethod.Name()),
	}
	return embed
}

func statusEmbed(cfg *models.GuildConfig) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "⚙️ Prayer Notification Settings",
		Color: 0x95a5a6,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Location", Value: cfg.Location.DisplayName(), Inline: true},
			{Name: "Timezone", Value: cfg.Timezone, Inline: true},
			{Name: "Method", Value: cfg.CalculationMethod.Name(), Inline: true},
		},
	}

	if cfg.ChannelID != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Text Channel", Value: fmt.Sprintf("<#%d>", *cfg.ChannelID), Inline: false,
		})
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Text Channel", Value: "Not subscribed", Inline: false,
		})
	}

	if cfg.VoiceChannelID != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Voice Channel", Value: fmt.Sprintf("<#%d>", *cfg.VoiceChannelID), Inline: false,
		})
	}

	if cfg.PingRoleID != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Ping Role", Value: fmt.Sprintf("<@&%d>", *cfg.PingRoleID), Inline: false,
		})
	}

	enabled := ""
	for _, prayer := range cfg.EnabledPrayers {
		if enabled != "" {
			enabled += ", "
		}
		enabled += string(prayer)
		if offset := cfg.OffsetFor(prayer); offset != 0 {
			enabled += fmt.Sprintf(" (%s)", common.FormatOffset(offset))
		}
	}
	if enabled == "" {
		enabled = "None"
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Enabled Prayers", Value: enabled, Inline: false,
	})

	return embed
}
