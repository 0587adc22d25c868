package favorite_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/favorite"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

func setup(t *testing.T) (*favorite.Service, *memory.Products, *memory.Favorites, product.Product) {
	t.Helper()
	products := memory.NewProducts()
	favs := memory.NewFavorites()
	p := product.Product{ID: uuid.New(), SKU: "JKT-1", Name: "Denim Jacket", Price: decimal.RequireFromString("60"), Collection: "Casual Wear", IsPublished: true}
	require.NoError(t, products.Create(context.Background(), &p))
	return favorite.NewService(favs, product.NewService(products)), products, favs, p
}

func TestAddIsUniquePerUserAndProduct(t *testing.T) {
	svc, _, favs, p := setup(t)
	ctx := context.Background()
	user := uuid.New()

	f, err := svc.Add(ctx, user, &favorite.AddRequest{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, user, f.UserID)

	_, err = svc.Add(ctx, user, &favorite.AddRequest{ProductID: p.ID})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	stored, err := favs.FindByUser(ctx, user)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	// another user may favorite the same product
	_, err = svc.Add(ctx, uuid.New(), &favorite.AddRequest{ProductID: p.ID})
	assert.NoError(t, err)
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _, _, _ := setup(t)
	_, err := svc.Add(context.Background(), uuid.New(), &favorite.AddRequest{ProductID: uuid.New()})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestRemoveChecksOwnership(t *testing.T) {
	svc, _, _, p := setup(t)
	ctx := context.Background()
	owner := uuid.New()

	f, err := svc.Add(ctx, owner, &favorite.AddRequest{ProductID: p.ID})
	require.NoError(t, err)

	err = svc.Remove(ctx, uuid.New(), f.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	require.NoError(t, svc.Remove(ctx, owner, f.ID))

	err = svc.Remove(ctx, owner, f.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestListSkipsDeletedProducts(t *testing.T) {
	svc, products, _, p := setup(t)
	ctx := context.Background()
	user := uuid.New()

	other := product.Product{ID: uuid.New(), SKU: "JKT-2", Name: "Wool Coat", Price: decimal.RequireFromString("120"), IsPublished: true}
	require.NoError(t, products.Create(ctx, &other))

	_, err := svc.Add(ctx, user, &favorite.AddRequest{ProductID: p.ID})
	require.NoError(t, err)
	_, err = svc.Add(ctx, user, &favorite.AddRequest{ProductID: other.ID})
	require.NoError(t, err)
	require.NoError(t, products.Delete(ctx, other.ID))

	entries, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Denim Jacket", entries[0].Product.Name)
}
