package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shopline/catalog-service/internal/events"
	"github.com/shopline/catalog-service/internal/repository"
	apperrors "github.com/shopline/catalog-service/pkg/util/errorutil"
)

// translate maps repository failures onto the API error taxonomy.
func translate(err error, resource, duplicateMsg string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrDuplicateKey):
		return apperrors.NewDuplicateKey(duplicateMsg, err)
	}
	var perr *repository.PersistenceError
	if errors.As(err, &perr) {
		return apperrors.NewPersistenceError(err)
	}
	return apperrors.NewInternalError(err)
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("resource_id", event.ResourceID),
			zap.Error(err))
	}
}
