// internal/domain/recommendation/service.go
package recommendation

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/favorite"
	"github.com/your-org/storefront-backend/internal/domain/history"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

// Signal weights
const (
	FavoriteWeight  = 3
	ViewWeight      = 1
	OrderItemWeight = 2

	topTags = 3
)

// FavoriteSource lists a user's favorites in insertion order
type FavoriteSource interface {
	Favorites(ctx context.Context, userID uuid.UUID) ([]favorite.Favorite, error)
}

// ViewSource lists a user's product views oldest first
type ViewSource interface {
	Views(ctx context.Context, userID uuid.UUID) ([]history.View, error)
}

// OrderSource lists a user's orders
type OrderSource interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error)
}

// Catalog resolves products and runs the final collection query
type Catalog interface {
	GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error)
	List(ctx context.Context, f product.Filter) ([]product.Product, error)
}

// TagScore is the accumulated weight of one style tag
type TagScore struct {
	Tag   string `json:"tag"`
	Score int    `json:"score"`
}

// Result is a recommendation for one user
type Result struct {
	Tags     []string          `json:"tags"`
	Fallback bool              `json:"fallback"`
	Products []product.Product `json:"products"`
}

// Service ranks style tags from engagement and order history
type Service struct {
	favorites FavoriteSource
	views     ViewSource
	orders    OrderSource
	catalog   Catalog
	defaults  []string
	limit     int
}

// NewService creates a new recommendation service
func NewService(favorites FavoriteSource, views ViewSource, orders OrderSource, catalog Catalog, cfg config.RecommendationConfig) *Service {
	return &Service{
		favorites: favorites,
		views:     views,
		orders:    orders,
		catalog:   catalog,
		defaults:  append([]string(nil), cfg.DefaultTags...),
		limit:     cfg.Limit,
	}
}

// Score tallies the user's signals into tags ranked by descending score.
// Favorites and views count under the product's collection, order items
// under the category stored on the item. Equal scores keep first-seen order:
// favorites, then views, then orders.
func (s *Service) Score(ctx context.Context, userID uuid.UUID) ([]TagScore, error) {
	favs, err := s.favorites.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	views, err := s.views.Views(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(favs)+len(views))
	for _, f := range favs {
		ids = append(ids, f.ProductID)
	}
	for _, v := range views {
		ids = append(ids, v.ProductID)
	}
	products, err := s.catalog.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	var t tally
	for _, f := range favs {
		if p, ok := products[f.ProductID]; ok {
			t.add(p.Collection, FavoriteWeight)
		}
	}
	for _, v := range views {
		if p, ok := products[v.ProductID]; ok {
			t.add(p.Collection, ViewWeight)
		}
	}
	for _, o := range orders {
		for _, item := range o.OrderItems {
			t.add(item.Category, OrderItemWeight)
		}
	}
	return t.ranked(), nil
}

// Recommend picks the top tags and returns published products in them
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID) (*Result, error) {
	scores, err := s.Score(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to score preferences: %w", err)
	}

	result := &Result{}
	for i := 0; i < len(scores) && i < topTags; i++ {
		result.Tags = append(result.Tags, scores[i].Tag)
	}
	if len(result.Tags) == 0 {
		result.Tags = append([]string(nil), s.defaults...)
		result.Fallback = true
		metrics.RecommendationFallbacks.Inc()
	}

	result.Products, err = s.catalog.List(ctx, product.Filter{
		Collections: result.Tags,
		Limit:       s.limit,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type tally struct {
	scores map[string]int
	seen   []string
}

func (t *tally) add(tag string, weight int) {
	if tag == "" {
		return
	}
	if t.scores == nil {
		t.scores = make(map[string]int)
	}
	if _, ok := t.scores[tag]; !ok {
		t.seen = append(t.seen, tag)
	}
	t.scores[tag] += weight
}

func (t *tally) ranked() []TagScore {
	out := make([]TagScore, len(t.seen))
	for i, tag := range t.seen {
		out[i] = TagScore{Tag: tag, Score: t.scores[tag]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
