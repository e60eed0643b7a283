package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/cache"
	"github.com/spec-kit/catalog-service/internal/events"
)

// CacheInvalidator clears cached read entries when write events fire. The
// dispatcher is synchronous, so invalidation completes within the writing
// request.
type CacheInvalidator struct {
	dispatcher events.Dispatcher
	store      *cache.Store
	logger     *zap.Logger
}

// NewCacheInvalidator creates the subscriber.
func NewCacheInvalidator(dispatcher events.Dispatcher, store *cache.Store, logger *zap.Logger) *CacheInvalidator {
	return &CacheInvalidator{dispatcher: dispatcher, store: store, logger: logger}
}

// RegisterHandlers subscribes to every write event.
func (i *CacheInvalidator) RegisterHandlers() {
	if i.dispatcher == nil {
		return
	}
	i.dispatcher.Subscribe(events.EventUserUpdated, i.invalidateUser)
	i.dispatcher.Subscribe(events.EventUserDeactivated, i.invalidateUser)
	i.dispatcher.Subscribe(events.EventProductCreated, i.invalidateProduct)
	i.dispatcher.Subscribe(events.EventProductUpdated, i.invalidateProduct)
	i.dispatcher.Subscribe(events.EventProductDeleted, i.invalidateProduct)
}

func (i *CacheInvalidator) invalidateUser(ctx context.Context, event events.Event) error {
	i.store.Delete(ctx, cache.UserKey(event.EntityID))
	i.logger.Debug("cache invalidated",
		zap.String("entity", "user"),
		zap.String("id", event.EntityID),
		zap.String("event", string(event.Type)))
	return nil
}

func (i *CacheInvalidator) invalidateProduct(ctx context.Context, event events.Event) error {
	i.store.Delete(ctx, cache.ProductKey(event.EntityID))
	i.logger.Debug("cache invalidated",
		zap.String("entity", "product"),
		zap.String("id", event.EntityID),
		zap.String("event", string(event.Type)))
	return nil
}
