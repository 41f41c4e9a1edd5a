package bot

import (
	"fmt"

	"athanbot/models"

	"github.com/bwmarrin/discordgo"
)

func methodChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.AllCalculationMethods))
	for _, m := range models.AllCalculationMethods {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  m.Name(),
			Value: string(m),
		})
	}
	return choices
}

func prayerChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.NotifiablePrayers))
	for _, p := range models.NotifiablePrayers {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(p),
			Value: string(p),
		})
	}
	return choices
}

func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "setup",
			Description: "Configure your city and timezone for prayer times",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "city",
					Description: "City to compute prayer times for",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "country",
					Description: "Country the city is in",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "daylight_saving",
					Description: "Apply daylight saving adjustment",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "timezone",
					Description: "IANA timezone override, e.g. Asia/Qatar",
					Required:    false,
				},
			},
		},
		{
			Name:        "method",
			Description: "Choose the prayer time calculation method",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "method",
					Description: "Calculation method",
					Required:    true,
					Choices:     methodChoices(),
				},
			},
		},
		{
			Name:        "offset",
			Description: "Shift a prayer's notification by whole minutes",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prayer",
					Description: "Prayer to adjust",
					Required:    true,
					Choices:     prayerChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "minutes",
					Description: "Offset in minutes, negative for earlier",
					Required:    true,
				},
			},
		},
		{
			Name:        "prayers",
			Description: "Enable or disable notifications for a prayer",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "enable",
					Description: "Enable notifications for a prayer",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "prayer",
							Description: "Prayer to enable",
							Required:    true,
							Choices:     prayerChoices(),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "disable",
					Description: "Disable notifications for a prayer",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "prayer",
							Description: "Prayer to disable",
							Required:    true,
							Choices:     prayerChoices(),
						},
					},
				},
			},
		},
		{
			Name:        "my-offset",
			Description: "Set a personal offset shown only to you in time queries",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prayer",
					Description: "Prayer to adjust",
					Required:    true,
					Choices:     prayerChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "minutes",
					Description: "Offset in minutes, negative for earlier",
					Required:    true,
				},
			},
		},
		{
			Name:        "subscribe",
			Description: "Send prayer notifications to a channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Channel to notify, defaults to the current one",
					Required:     false,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "ping_role",
					Description: "Role to mention with each notification",
					Required:    false,
				},
			},
		},
		{
			Name:        "subscribe-voice",
			Description: "Play the adhan in a voice channel at prayer times",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Voice channel to play the adhan in",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice},
				},
			},
		},
		{
			Name:        "unsubscribe",
			Description: "Stop all prayer notifications for this server",
		},
		{
			Name:        "next-prayer",
			Description: "Show the next prayer and how long until it",
		},
		{
			Name:        "today",
			Description: "Show all of today's prayer times",
		},
		{
			Name:        "status",
			Description: "Show this server's prayer notification settings",
		},
		{
			Name:        "test",
			Description: "Send a test prayer notification",
		},
		{
			Name:        "adhan-voice",
			Description: "Play the adhan in a voice channel now",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Voice channel, defaults to the one you are in",
					Required:     false,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice},
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
