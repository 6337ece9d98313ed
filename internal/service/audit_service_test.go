package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shopline/catalog-service/internal/domain"
	"github.com/shopline/catalog-service/internal/events"
	"github.com/shopline/catalog-service/internal/repository"
)

func TestAuditService_LogsMutations(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	svc := NewProductService(repository.NewMemoryStore().Products(), dispatcher, nil)
	ctx := context.Background()

	product, err := svc.Create(ctx, domain.ProductPatch{Title: ptr("Pen"), Price: ptr(1.5)})
	require.NoError(t, err)
	_, err = svc.Update(ctx, product.ID, domain.ProductPatch{Price: ptr(2.0)})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, product.ID))

	entries := logs.FilterMessage("resource changed").All()
	require.Len(t, entries, 3)

	types := make([]string, 0, len(entries))
	for _, e := range entries {
		fields := e.ContextMap()
		assert.Equal(t, product.ID, fields["resource_id"])
		types = append(types, fields["event_type"].(string))
	}
	assert.Equal(t, []string{"product.created", "product.updated", "product.deleted"}, types)
	assert.Equal(t, []interface{}{"price"}, entries[1].ContextMap()["changed_fields"])
}

func TestAuditService_NilDispatcher(t *testing.T) {
	assert.NotPanics(t, func() { NewAuditService(nil, zap.NewNop()).RegisterHandlers() })
}
