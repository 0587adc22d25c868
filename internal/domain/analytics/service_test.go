package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
)

type fakeOrders struct {
	orders []order.Order
	err    error
}

func (f fakeOrders) ListAll(context.Context) ([]order.Order, error) { return f.orders, f.err }

type fakeUsers []user.User

func (f fakeUsers) List(context.Context) ([]user.User, error) { return f, nil }

type fakeProducts []product.Product

func (f fakeProducts) AdminList(context.Context) ([]product.Product, error) { return f, nil }

func item(id uuid.UUID, name, price string, qty int) order.Item {
	return order.Item{ProductID: id, Name: name, Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestGetDashboardStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tee, blazer := uuid.New(), uuid.New()

	orders := []order.Order{
		{
			OrderItems: []order.Item{item(tee, "Slim Tee", "15", 2)},
			TotalPrice: decimal.RequireFromString("30"), IsPaid: true,
			Status: order.StatusProcessing, CreatedAt: now.Add(-time.Hour),
		},
		{
			OrderItems: []order.Item{item(blazer, "Wool Blazer", "150", 1), item(tee, "Slim Tee", "15", 1)},
			TotalPrice: decimal.RequireFromString("165"), IsPaid: true,
			Status: order.StatusDelivered, CreatedAt: now.AddDate(0, 0, -10),
		},
		{
			OrderItems: []order.Item{item(blazer, "Wool Blazer", "150", 4)},
			TotalPrice: decimal.RequireFromString("600"), IsPaid: true,
			Status: order.StatusCancelled, CreatedAt: now.AddDate(0, -2, 0),
		},
	}
	users := fakeUsers{
		{Name: "Ana", CreatedAt: now.AddDate(0, 0, -1)},
		{Name: "Bo", CreatedAt: now.AddDate(0, -3, 0)},
	}
	products := fakeProducts{
		{Name: "Slim Tee", IsPublished: true, CountInStock: 40},
		{Name: "Wool Blazer", IsPublished: true, CountInStock: 3},
		{Name: "Draft", CountInStock: 0},
	}

	svc := NewService(fakeOrders{orders: orders}, users, products)
	svc.now = func() time.Time { return now }

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("195")), stats.TotalRevenue.String())
	assert.True(t, stats.RevenueToday.Equal(decimal.RequireFromString("30")))
	assert.True(t, stats.RevenueThisMonth.Equal(decimal.RequireFromString("195")))
	assert.True(t, stats.AvgOrderValue.Equal(decimal.RequireFromString("97.5")))

	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 1, stats.OrdersToday)
	assert.Equal(t, 2, stats.OrdersThisMonth)

	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.NewUsersThisMonth)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.PublishedProducts)
	assert.Equal(t, 1, stats.OutOfStockProducts)
	assert.Equal(t, 1, stats.LowStockProducts)

	require.Len(t, stats.OrdersByStatus, 4)
	assert.Equal(t, order.StatusCancelled, stats.OrdersByStatus[3].Status)
	assert.Equal(t, 1, stats.OrdersByStatus[3].Count)
	assert.Equal(t, 0, stats.OrdersByStatus[1].Count)

	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, tee, stats.TopProducts[0].ProductID)
	assert.Equal(t, 3, stats.TopProducts[0].TotalSold)
	assert.Equal(t, 2, stats.TopProducts[0].OrderCount)
	assert.Equal(t, blazer, stats.TopProducts[1].ProductID)
	assert.Equal(t, 1, stats.TopProducts[1].TotalSold, "cancelled orders do not count as sales")
}

func TestGetDashboardStatsEmpty(t *testing.T) {
	svc := NewService(fakeOrders{}, fakeUsers{}, fakeProducts{})
	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.AvgOrderValue.IsZero())
	assert.Empty(t, stats.TopProducts)
}

func TestGetDashboardStatsSourceError(t *testing.T) {
	svc := NewService(fakeOrders{err: errors.New("db down")}, fakeUsers{}, fakeProducts{})
	_, err := svc.GetDashboardStats(context.Background())
	assert.ErrorContains(t, err, "failed to list orders")
}
