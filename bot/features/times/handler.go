package times

import (
	"context"
	"strconv"
	"time"

	"athanbot/bot/common"
	"athanbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const noDataMessage = "❌ Could not fetch prayer times right now, please try again"

// HandleNextPrayer handles the /next-prayer command
func (f *Feature) HandleNextPrayer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cfg, ok := f.requireConfig(s, i)
	if !ok {
		return
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Failed to defer next-prayer response: %v", err)
		return
	}

	ctx := context.Background()

	next, err := f.queryService.NextPrayer(ctx, cfg)
	if err != nil {
		log.Errorf("Failed to resolve next prayer: %v", err)
		common.FollowUpWithError(s, i, noDataMessage)
		return
	}
	if next == nil {
		common.FollowUpWithError(s, i, noDataMessage)
		return
	}

	at := next.At.Add(time.Duration(f.personalOffset(ctx, i, next.Prayer)) * time.Minute)

	if _, err := common.FollowUpWithEmbed(s, i, nextPrayerEmbed(next.Prayer, at, cfg), false); err != nil {
		log.Errorf("Failed to respond to next-prayer: %v", err)
	}
}

// HandleToday handles the /today command
func (f *Feature) HandleToday(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cfg, ok := f.requireConfig(s, i)
	if !ok {
		return
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Failed to defer today response: %v", err)
		return
	}

	times, err := f.queryService.Today(context.Background(), cfg)
	if err != nil {
		log.Errorf("Failed to fetch today's times: %v", err)
		common.FollowUpWithError(s, i, noDataMessage)
		return
	}
	if times == nil {
		common.FollowUpWithError(s, i, noDataMessage)
		return
	}

	if _, err := common.FollowUpWithEmbed(s, i, todayEmbed(times, cfg), false); err != nil {
		log.Errorf("Failed to respond to today: %v", err)
	}
}

// HandleStatus handles the /status command
func (f *Feature) HandleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cfg, ok := f.requireConfig(s, i)
	if !ok {
		return
	}

	if err := common.RespondWithEmbed(s, i, statusEmbed(cfg), true); err != nil {
		log.Errorf("Failed to respond to status: %v", err)
	}
}

// personalOffset looks up the invoking user's preference for a prayer, zero
// when they never set one
func (f *Feature) personalOffset(ctx context.Context, i *discordgo.InteractionCreate, prayer models.Prayer) int {
	if i.Member == nil {
		return 0
	}
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		return 0
	}

	ucfg, err := f.userRepo.Get(ctx, userID)
	if err != nil || ucfg == nil {
		return 0
	}
	return ucfg.OffsetFor(prayer)
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
