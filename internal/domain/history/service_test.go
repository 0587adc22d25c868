package history_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/history"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

func TestRecordViewAppends(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProducts()
	repo := memory.NewHistory()
	svc := history.NewService(repo, product.NewService(products))

	shirt := product.Product{ID: uuid.New(), SKU: "SH-1", Name: "Oxford Shirt", Price: decimal.RequireFromString("40"), IsPublished: true}
	chino := product.Product{ID: uuid.New(), SKU: "CH-1", Name: "Chino", Price: decimal.RequireFromString("50"), IsPublished: true}
	require.NoError(t, products.Create(ctx, &shirt))
	require.NoError(t, products.Create(ctx, &chino))

	user := uuid.New()
	for _, id := range []uuid.UUID{shirt.ID, chino.ID, shirt.ID} {
		_, err := svc.RecordView(ctx, user, &history.ViewRequest{ProductID: id})
		require.NoError(t, err)
	}

	_, err := svc.RecordView(ctx, user, &history.ViewRequest{ProductID: uuid.New()})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	views, err := repo.FindByUser(ctx, user)
	require.NoError(t, err)
	assert.Len(t, views, 3)

	all, err := svc.List(ctx, user, history.ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, shirt.ID, all[0].ProductID)
	assert.Equal(t, chino.ID, all[1].ProductID)
	assert.Equal(t, shirt.ID, all[2].ProductID)

	unique, err := svc.List(ctx, user, history.ListQuery{Unique: true})
	require.NoError(t, err)
	require.Len(t, unique, 2)
	assert.Equal(t, shirt.ID, unique[0].ProductID)
	assert.Equal(t, chino.ID, unique[1].ProductID)
	assert.Equal(t, "Oxford Shirt", unique[0].Product.Name)
}
