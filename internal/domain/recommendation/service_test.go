package recommendation_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/favorite"
	"github.com/your-org/storefront-backend/internal/domain/history"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/recommendation"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
)

type fixture struct {
	products  *memory.Products
	favorites *favorite.Service
	history   *history.Service
	orders    *order.Service
	svc       *recommendation.Service
}

func newFixture() *fixture {
	products := memory.NewProducts()
	catalog := product.NewService(products)
	f := &fixture{
		products:  products,
		favorites: favorite.NewService(memory.NewFavorites(), catalog),
		history:   history.NewService(memory.NewHistory(), catalog),
		orders:    order.NewService(memory.NewOrders(), nil),
	}
	f.svc = recommendation.NewService(f.favorites, f.history, f.orders, catalog, config.RecommendationConfig{
		DefaultTags: []string{"Casual Wear", "Business Casual", "Formal Wear"},
		Limit:       8,
	})
	return f
}

func (f *fixture) product(t *testing.T, collection string) product.Product {
	t.Helper()
	p := product.Product{
		ID:          uuid.New(),
		SKU:         uuid.NewString(),
		Name:        collection + " item",
		Price:       decimal.RequireFromString("25"),
		Category:    "Top Wear",
		Collection:  collection,
		IsPublished: true,
	}
	require.NoError(t, f.products.Create(context.Background(), &p))
	return p
}

func (f *fixture) order(t *testing.T, userID uuid.UUID, categories ...string) {
	t.Helper()
	o := &order.Order{UserID: userID, TotalPrice: decimal.Zero}
	for _, c := range categories {
		o.OrderItems = append(o.OrderItems, order.Item{ProductID: uuid.New(), Name: "line", Quantity: 1, Category: c})
	}
	require.NoError(t, f.orders.Place(context.Background(), o))
}

func TestScoreWeighting(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := uuid.New()

	a := f.product(t, "tagA")
	b := f.product(t, "tagB")

	_, err := f.favorites.Add(ctx, user, &favorite.AddRequest{ProductID: a.ID})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = f.history.RecordView(ctx, user, &history.ViewRequest{ProductID: b.ID})
		require.NoError(t, err)
	}
	f.order(t, user, "tagA")

	scores, err := f.svc.Score(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []recommendation.TagScore{
		{Tag: "tagA", Score: 5},
		{Tag: "tagB", Score: 2},
	}, scores)

	result, err := f.svc.Recommend(ctx, user)
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	assert.Equal(t, []string{"tagA", "tagB"}, result.Tags)
	assert.Len(t, result.Products, 2)
}

func TestOrdersScoreByCategory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := uuid.New()

	f.order(t, user, "Bottom Wear", "Bottom Wear")

	scores, err := f.svc.Score(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []recommendation.TagScore{{Tag: "Bottom Wear", Score: 4}}, scores)
}

func TestTiesKeepFirstSeenOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := uuid.New()

	fav := f.product(t, "Streetwear")
	viewed := f.product(t, "Athleisure")

	_, err := f.favorites.Add(ctx, user, &favorite.AddRequest{ProductID: fav.ID})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = f.history.RecordView(ctx, user, &history.ViewRequest{ProductID: viewed.ID})
		require.NoError(t, err)
	}
	f.order(t, user, "Loungewear")
	f.order(t, user, "Resort")

	scores, err := f.svc.Score(ctx, user)
	require.NoError(t, err)
	require.Len(t, scores, 4)
	assert.Equal(t, "Streetwear", scores[0].Tag)
	assert.Equal(t, "Athleisure", scores[1].Tag)
	assert.Equal(t, 3, scores[1].Score)
	assert.Equal(t, 2, scores[2].Score)

	result, err := f.svc.Recommend(ctx, user)
	require.NoError(t, err)
	assert.Len(t, result.Tags, 3)
	assert.Equal(t, []string{"Streetwear", "Athleisure"}, result.Tags[:2])
}

func TestRecommendFallsBackToDefaults(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.product(t, "Casual Wear")
		f.product(t, "Formal Wear")
	}
	f.product(t, "Streetwear")
	hidden := f.product(t, "Business Casual")
	hidden.IsPublished = false
	require.NoError(t, f.products.Update(ctx, &hidden))

	result, err := f.svc.Recommend(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, []string{"Casual Wear", "Business Casual", "Formal Wear"}, result.Tags)
	assert.Len(t, result.Products, 8)
	for _, p := range result.Products {
		assert.Contains(t, result.Tags, p.Collection, fmt.Sprintf("unexpected collection for %s", p.Name))
		assert.True(t, p.IsPublished)
	}
}
