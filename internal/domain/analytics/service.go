// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
)

const (
	// LowStockThreshold is the stock level at or below which a product counts as low
	LowStockThreshold = 5
	topProductsLimit  = 5
)

// OrderSource lists every order
type OrderSource interface {
	ListAll(ctx context.Context) ([]order.Order, error)
}

// UserSource lists every account
type UserSource interface {
	List(ctx context.Context) ([]user.User, error)
}

// ProductSource lists the whole catalog, unpublished entries included
type ProductSource interface {
	AdminList(ctx context.Context) ([]product.Product, error)
}

// Service handles analytics business logic
type Service struct {
	orders   OrderSource
	users    UserSource
	products ProductSource
	now      func() time.Time
}

// NewService creates a new analytics service
func NewService(orders OrderSource, users UserSource, products ProductSource) *Service {
	return &Service{
		orders:   orders,
		users:    users,
		products: products,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// DashboardStats represents overall dashboard statistics
type DashboardStats struct {
	// Sales metrics, paid and not cancelled orders only
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	RevenueToday     decimal.Decimal `json:"revenueToday"`
	RevenueThisMonth decimal.Decimal `json:"revenueThisMonth"`
	AvgOrderValue    decimal.Decimal `json:"avgOrderValue"`

	// Order metrics
	TotalOrders     int          `json:"totalOrders"`
	OrdersToday     int          `json:"ordersToday"`
	OrdersThisMonth int          `json:"ordersThisMonth"`
	OrdersByStatus  []StatusData `json:"ordersByStatus"`

	// User metrics
	TotalUsers        int `json:"totalUsers"`
	NewUsersThisMonth int `json:"newUsersThisMonth"`

	// Product metrics
	TotalProducts      int `json:"totalProducts"`
	PublishedProducts  int `json:"publishedProducts"`
	OutOfStockProducts int `json:"outOfStockProducts"`
	LowStockProducts   int `json:"lowStockProducts"`

	TopProducts []ProductSalesData `json:"topProducts"`
}

// StatusData is the order count and value of one fulfilment status
type StatusData struct {
	Status order.Status    `json:"status"`
	Count  int             `json:"count"`
	Value  decimal.Decimal `json:"value"`
}

// ProductSalesData is what one product sold across all orders
type ProductSalesData struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	TotalSold   int             `json:"totalSold"`
	Revenue     decimal.Decimal `json:"revenue"`
	OrderCount  int             `json:"orderCount"`
}

// GetDashboardStats retrieves overall dashboard statistics
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	products, err := s.products.AdminList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{TotalOrders: len(orders), TotalUsers: len(users), TotalProducts: len(products)}
	stats.OrdersByStatus = statusBreakdown(orders)
	stats.TopProducts = topProducts(orders, topProductsLimit)

	var revenueOrders int
	for _, o := range orders {
		if !o.CreatedAt.Before(today) {
			stats.OrdersToday++
		}
		if !o.CreatedAt.Before(thisMonth) {
			stats.OrdersThisMonth++
		}
		if !countsAsRevenue(o) {
			continue
		}
		revenueOrders++
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalPrice)
		if !o.CreatedAt.Before(today) {
			stats.RevenueToday = stats.RevenueToday.Add(o.TotalPrice)
		}
		if !o.CreatedAt.Before(thisMonth) {
			stats.RevenueThisMonth = stats.RevenueThisMonth.Add(o.TotalPrice)
		}
	}
	if revenueOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(revenueOrders))).Round(2)
	}

	for _, u := range users {
		if !u.CreatedAt.Before(thisMonth) {
			stats.NewUsersThisMonth++
		}
	}

	for _, p := range products {
		if p.IsPublished {
			stats.PublishedProducts++
		}
		switch {
		case p.CountInStock <= 0:
			stats.OutOfStockProducts++
		case p.CountInStock <= LowStockThreshold:
			stats.LowStockProducts++
		}
	}

	return stats, nil
}

func countsAsRevenue(o order.Order) bool {
	return o.IsPaid && o.Status != order.StatusCancelled
}

func statusBreakdown(orders []order.Order) []StatusData {
	all := []order.Status{order.StatusProcessing, order.StatusShipped, order.StatusDelivered, order.StatusCancelled}
	out := make([]StatusData, len(all))
	index := make(map[order.Status]int, len(all))
	for i, status := range all {
		out[i] = StatusData{Status: status}
		index[status] = i
	}

	for _, o := range orders {
		i, ok := index[o.Status]
		if !ok {
			continue
		}
		out[i].Count++
		out[i].Value = out[i].Value.Add(o.TotalPrice)
	}
	return out
}

// topProducts ranks products by units sold, then revenue, then first appearance
func topProducts(orders []order.Order, limit int) []ProductSalesData {
	var ranked []ProductSalesData
	index := make(map[uuid.UUID]int)

	for _, o := range orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		counted := make(map[uuid.UUID]bool)
		for _, item := range o.OrderItems {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(ranked)
				index[item.ProductID] = i
				ranked = append(ranked, ProductSalesData{ProductID: item.ProductID, ProductName: item.Name})
			}
			ranked[i].TotalSold += item.Quantity
			ranked[i].Revenue = ranked[i].Revenue.Add(item.Subtotal())
			if !counted[item.ProductID] {
				ranked[i].OrderCount++
				counted[item.ProductID] = true
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalSold != ranked[j].TotalSold {
			return ranked[i].TotalSold > ranked[j].TotalSold
		}
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
