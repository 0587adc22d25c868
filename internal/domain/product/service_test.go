package product_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

func newService() (*product.Service, *memory.Products) {
	repo := memory.NewProducts()
	return product.NewService(repo), repo
}

func seed(t *testing.T, repo *memory.Products, p product.Product) product.Product {
	t.Helper()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.SKU == "" {
		p.SKU = p.ID.String()
	}
	p.IsPublished = true
	require.NoError(t, repo.Create(context.Background(), &p))
	return p
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func names(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestListPriceRangeIsInclusive(t *testing.T) {
	svc, repo := newService()
	seed(t, repo, product.Product{Name: "ten", Price: price("10")})
	seed(t, repo, product.Product{Name: "twenty", Price: price("20")})
	seed(t, repo, product.Product{Name: "twenty-one", Price: price("21")})
	seed(t, repo, product.Product{Name: "nine", Price: price("9.99")})

	f, err := product.ListQuery{MinPrice: "10", MaxPrice: "20"}.Filter()
	require.NoError(t, err)

	got, err := svc.List(context.Background(), f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ten", "twenty"}, names(got))
}

func TestListConjunctiveFilters(t *testing.T) {
	svc, repo := newService()
	seed(t, repo, product.Product{
		Name: "Oxford Shirt", Description: "Crisp cotton", Price: price("40"),
		Category: "Top Wear", Gender: product.GenderMen, Collection: "Business Casual",
		Material: "Cotton", Brand: "Urban", Sizes: []string{"S", "M"}, Colors: []string{"White"},
	})
	seed(t, repo, product.Product{
		Name: "Linen Shirt", Description: "Breathable", Price: price("45"),
		Category: "Top Wear", Gender: product.GenderMen, Collection: "Casual Wear",
		Material: "Linen", Brand: "Urban", Sizes: []string{"L"}, Colors: []string{"Blue"},
	})
	seed(t, repo, product.Product{
		Name: "Silk Blouse", Description: "Soft OXFORD weave", Price: price("60"),
		Category: "Top Wear", Gender: product.GenderWomen, Collection: "Formal Wear",
		Material: "Silk", Brand: "Fashionista", Sizes: []string{"M"}, Colors: []string{"White"},
	})

	ctx := context.Background()
	cases := []struct {
		name  string
		query product.ListQuery
		want  []string
	}{
		{"category all is no filter", product.ListQuery{Category: "all"}, []string{"Oxford Shirt", "Linen Shirt", "Silk Blouse"}},
		{"gender", product.ListQuery{Gender: "Men"}, []string{"Oxford Shirt", "Linen Shirt"}},
		{"material set", product.ListQuery{Material: "Linen,Silk"}, []string{"Linen Shirt", "Silk Blouse"}},
		{"brand and size", product.ListQuery{Brand: "Urban", Size: "M,XL"}, []string{"Oxford Shirt"}},
		{"color", product.ListQuery{Color: "White"}, []string{"Oxford Shirt", "Silk Blouse"}},
		{"search name or description", product.ListQuery{Search: "oxford"}, []string{"Oxford Shirt", "Silk Blouse"}},
		{"collection", product.ListQuery{Collection: "Casual Wear"}, []string{"Linen Shirt"}},
		{"sort desc with limit", product.ListQuery{SortBy: "priceDesc", Limit: 2}, []string{"Silk Blouse", "Linen Shirt"}},
		{"no match", product.ListQuery{Gender: "Women", Material: "Linen"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := tc.query.Filter()
			require.NoError(t, err)
			got, err := svc.List(ctx, f)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(got))
		})
	}
}

func TestListQueryRejectsBadInput(t *testing.T) {
	_, err := product.ListQuery{MinPrice: "cheap"}.Filter()
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = product.ListQuery{Gender: "Kids"}.Filter()
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	f, err := product.ListQuery{SortBy: "random"}.Filter()
	require.NoError(t, err)
	assert.Equal(t, product.SortNatural, f.Sort)
}

func TestListHidesUnpublished(t *testing.T) {
	svc, repo := newService()
	hidden := product.Product{ID: uuid.New(), SKU: "hidden", Name: "hidden", Price: price("5")}
	require.NoError(t, repo.Create(context.Background(), &hidden))
	seed(t, repo, product.Product{Name: "shown", Price: price("5")})

	got, err := svc.List(context.Background(), product.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"shown"}, names(got))

	all, err := svc.AdminList(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBestSellerNewArrivalsSimilar(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	var first product.Product
	for i := 0; i < 10; i++ {
		p := seed(t, repo, product.Product{
			Name:      string(rune('a' + i)),
			Price:     price("10"),
			Rating:    float64(i % 5),
			Category:  "Bottom Wear",
			Gender:    product.GenderWomen,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if i == 0 {
			first = p
		}
	}

	best, err := svc.BestSeller(ctx)
	require.NoError(t, err)
	assert.Equal(t, "e", best.Name)

	arrivals, err := svc.NewArrivals(ctx)
	require.NoError(t, err)
	require.Len(t, arrivals, 8)
	assert.Equal(t, "j", arrivals[0].Name)

	similar, err := svc.Similar(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, similar, 4)
	for _, p := range similar {
		assert.NotEqual(t, first.ID, p.ID)
	}

	_, err = svc.Similar(ctx, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestBestSellerEmptyCatalog(t *testing.T) {
	svc, _ := newService()
	_, err := svc.BestSeller(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCreateUpdateDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	admin := uuid.New()

	req := &product.CreateRequest{
		Name: "Denim Jacket", Description: "Classic", Price: price("79.90"),
		SKU: "DJ-1", Category: "Top Wear", Collection: "Casual Wear", Gender: product.GenderUnisex,
	}
	created, err := svc.Create(ctx, admin, req)
	require.NoError(t, err)
	require.NotNil(t, created.UserID)
	assert.Equal(t, admin, *created.UserID)
	assert.True(t, created.IsPublished)

	_, err = svc.Create(ctx, admin, req)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = svc.Create(ctx, admin, &product.CreateRequest{Name: "no sku", Description: "x", Category: "c", Collection: "c"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	newPrice := price("59.90")
	updated, err := svc.Update(ctx, created.ID, &product.UpdateRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, newPrice.Equal(updated.Price))
	assert.Equal(t, "Denim Jacket", updated.Name)

	other, err := svc.Create(ctx, admin, &product.CreateRequest{
		Name: "Chinos", Description: "Slim", Price: price("49"), SKU: "CH-1", Category: "Bottom Wear", Collection: "Casual Wear",
	})
	require.NoError(t, err)
	taken := "DJ-1"
	_, err = svc.Update(ctx, other.ID, &product.UpdateRequest{SKU: &taken})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.True(t, apperror.Is(svc.Delete(ctx, created.ID), apperror.KindNotFound))
}
