// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

// Repository persists carts keyed by their owner
type Repository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	FindByGuest(ctx context.Context, guestID string) (*Cart, error)
	// Save inserts or replaces the cart stored under c.ID
	Save(ctx context.Context, c *Cart) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	DeleteByGuest(ctx context.Context, guestID string) error
}

// ProductLookup resolves catalog entries for denormalisation
type ProductLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

// Service handles cart business logic
type Service struct {
	repo     Repository
	products ProductLookup
	logger   logrus.FieldLogger
}

// NewService creates a new cart service
func NewService(repo Repository, products ProductLookup, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

// AddRequest represents add to cart request
type AddRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
}

// UpdateRequest represents a quantity change on a cart line
type UpdateRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
}

// RemoveRequest identifies the cart line to drop
type RemoveRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
}

// Get returns the cart of the identity
func (s *Service) Get(ctx context.Context, identity Identity) (*Cart, error) {
	identity, err := identity.Resolve()
	if err != nil {
		return nil, err
	}
	return s.find(ctx, identity)
}

// Add puts a product into the cart, creating the cart on first use. A line
// with the same product, size and color has its quantity increased instead.
func (s *Service) Add(ctx context.Context, identity Identity, req *AddRequest) (*Cart, error) {
	identity, err := identity.Resolve()
	if err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be at least 1")
	}

	p, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.find(ctx, identity)
	if err != nil && !apperror.Is(err, apperror.KindNotFound) {
		return nil, err
	}
	if c == nil {
		c = &Cart{ID: uuid.New()}
		identity.Owns(c)
	}

	if i := c.IndexOf(p.ID, req.Size, req.Color); i >= 0 {
		c.Products[i].Quantity += req.Quantity
	} else {
		c.Products = append(c.Products, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.FirstImage(),
			Price:     p.Price,
			Size:      req.Size,
			Color:     req.Color,
			Quantity:  req.Quantity,
		})
	}

	return s.save(ctx, c)
}

// UpdateQuantity sets the quantity of a line; zero or less removes it
func (s *Service) UpdateQuantity(ctx context.Context, identity Identity, req *UpdateRequest) (*Cart, error) {
	identity, err := identity.Resolve()
	if err != nil {
		return nil, err
	}

	c, err := s.find(ctx, identity)
	if err != nil {
		return nil, err
	}

	i := c.IndexOf(req.ProductID, req.Size, req.Color)
	if i < 0 {
		return nil, apperror.NotFound("product not found in cart")
	}

	if req.Quantity > 0 {
		c.Products[i].Quantity = req.Quantity
	} else {
		c.Products = append(c.Products[:i], c.Products[i+1:]...)
	}

	return s.save(ctx, c)
}

// Remove drops a line from the cart
func (s *Service) Remove(ctx context.Context, identity Identity, req *RemoveRequest) (*Cart, error) {
	identity, err := identity.Resolve()
	if err != nil {
		return nil, err
	}

	c, err := s.find(ctx, identity)
	if err != nil {
		return nil, err
	}

	i := c.IndexOf(req.ProductID, req.Size, req.Color)
	if i < 0 {
		return nil, apperror.NotFound("product not found in cart")
	}
	c.Products = append(c.Products[:i], c.Products[i+1:]...)

	return s.save(ctx, c)
}

// Merge folds the guest cart into the user's cart at login
func (s *Service) Merge(ctx context.Context, userID uuid.UUID, guestID string) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, apperror.Unauthorized("authentication required")
	}
	guestIdentity, err := Identity{GuestID: guestID}.Resolve()
	if err != nil {
		return nil, err
	}
	userIdentity := Identity{UserID: &userID}

	guest, err := s.find(ctx, guestIdentity)
	if err != nil {
		if !apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		metrics.CartMerges.WithLabelValues("none").Inc()
		return s.find(ctx, userIdentity)
	}

	if len(guest.Products) == 0 {
		return nil, apperror.Validation("guest cart is empty")
	}

	user, err := s.find(ctx, userIdentity)
	if err != nil && !apperror.Is(err, apperror.KindNotFound) {
		return nil, err
	}

	var merged *Cart
	if user == nil {
		userIdentity.Owns(guest)
		if merged, err = s.save(ctx, guest); err != nil {
			return nil, err
		}
		metrics.CartMerges.WithLabelValues("reassign").Inc()
	} else {
		for _, item := range guest.Products {
			if i := user.IndexOf(item.ProductID, item.Size, item.Color); i >= 0 {
				user.Products[i].Quantity += item.Quantity
			} else {
				user.Products = append(user.Products, item)
			}
		}
		if merged, err = s.save(ctx, user); err != nil {
			return nil, err
		}
		metrics.CartMerges.WithLabelValues("merge").Inc()
	}

	if err := s.repo.DeleteByGuest(ctx, guestIdentity.GuestID); err != nil && !apperror.IsNotFound(err) {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"guest_id": guestIdentity.GuestID,
			"user_id":  userID,
		}).Warn("failed to delete guest cart after merge")
	}

	return merged, nil
}

// ClearUser deletes the user's cart. A missing cart is not an error.
func (s *Service) ClearUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (s *Service) find(ctx context.Context, identity Identity) (*Cart, error) {
	var (
		c   *Cart
		err error
	)
	if identity.UserID != nil {
		c, err = s.repo.FindByUser(ctx, *identity.UserID)
	} else {
		c, err = s.repo.FindByGuest(ctx, identity.GuestID)
	}
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("cart not found")
		}
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, c *Cart) (*Cart, error) {
	if c.Products == nil {
		c.Products = []Item{}
	}
	c.Recalculate()
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}
