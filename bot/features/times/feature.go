package times

import (
	"athanbot/service"
)

// Feature answers interactive prayer time queries
type Feature struct {
	guildRepo    service.GuildConfigRepository
	userRepo     service.UserConfigRepository
	queryService service.PrayerQueryService
}

// NewFeature creates a new times feature instance
func NewFeature(guildRepo service.GuildConfigRepository, userRepo service.UserConfigRepository, queryService service.PrayerQueryService) *Feature {
	return &Feature{
		guildRepo:    guildRepo,
		userRepo:     userRepo,
		queryService: queryService,
	}
}
