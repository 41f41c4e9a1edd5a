package settings

import (
	"athanbot/service"
)

// Feature handles guild and personal prayer configuration
type Feature struct {
	guildRepo  service.GuildConfigRepository
	userRepo   service.UserConfigRepository
	timeSource service.TimeSource
}

// NewFeature creates a new settings feature instance
func NewFeature(guildRepo service.GuildConfigRepository, userRepo service.UserConfigRepository, timeSource service.TimeSource) *Feature {
	return &Feature{
		guildRepo:  guildRepo,
		userRepo:   userRepo,
		timeSource: timeSource,
	}
}
