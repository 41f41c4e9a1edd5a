package settings

import (
	"context"
	"fmt"
	"strconv"

	"athanbot/bot/common"
	"athanbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleMyOffset handles the /my-offset command. Unlike the guild-wide
// /offset this stores a personal preference that only shifts what the
// invoking user sees in /next-prayer and /today.
func (f *Feature) HandleMyOffset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "❌ Failed to process command")
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

	ctx := context.Background()

	cfg, err := f.userRepo.Get(ctx, userID)
	if err != nil {
		log.Errorf("Failed to load user config: %v", err)
		common.RespondWithError(s, i, "❌ Failed to save settings")
		return
	}
	if cfg == nil {
		cfg = models.NewUserConfig(userID)
	}

	cfg.SetOffset(prayer, int(minutes))
	if err := f.userRepo.Upsert(ctx, cfg); err != nil {
		log.Errorf("Failed to save user config: %v", err)
		common.RespondWithError(s, i, "❌ Failed to save settings")
		return
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Your personal **%s** offset is now %s", prayer, common.FormatOffset(int(minutes))), true); err != nil {
		log.Errorf("Failed to respond to my-offset: %v", err)
	}
}
