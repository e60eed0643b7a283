package worker

import (
	"github.com/spec-kit/catalog-service/internal/service"
)

// StartSubscribers registers the in-process event subscribers.
func StartSubscribers(invalidator *service.CacheInvalidator, notifications *service.NotificationService) {
	if invalidator != nil {
		invalidator.RegisterHandlers()
	}
	if notifications != nil {
		notifications.RegisterHandlers()
	}
}
