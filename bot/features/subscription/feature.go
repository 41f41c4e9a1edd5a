package subscription

import (
	"athanbot/events"
	"athanbot/service"
)

// Feature handles notification channel subscriptions
type Feature struct {
	guildRepo service.GuildConfigRepository
	eventBus  *events.Bus
}

// NewFeature creates a new subscription feature instance
func NewFeature(guildRepo service.GuildConfigRepository, eventBus *events.Bus) *Feature {
	return &Feature{
		guildRepo: guildRepo,
		eventBus:  eventBus,
	}
}
