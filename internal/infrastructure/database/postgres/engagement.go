// internal/infrastructure/database/postgres/engagement.go
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/favorite"
	"github.com/your-org/storefront-backend/internal/domain/history"
	"github.com/your-org/storefront-backend/internal/domain/subscriber"
	"gorm.io/gorm"
)

// Favorites is the gorm favorite.Repository
type Favorites struct {
	db *gorm.DB
}

var _ favorite.Repository = (*Favorites)(nil)

func NewFavorites(db *gorm.DB) *Favorites {
	return &Favorites{db: db}
}

func (r *Favorites) Create(ctx context.Context, f *favorite.Favorite) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *Favorites) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&favorite.Favorite{}, "id = ?", id))
}

func (r *Favorites) FindByID(ctx context.Context, id uuid.UUID) (*favorite.Favorite, error) {
	var f favorite.Favorite
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *Favorites) FindByUser(ctx context.Context, userID uuid.UUID) ([]favorite.Favorite, error) {
	favs := []favorite.Favorite{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&favs).Error
	return favs, translate(err)
}

func (r *Favorites) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&favorite.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, translate(err)
}

// History is the gorm history.Repository
type History struct {
	db *gorm.DB
}

var _ history.Repository = (*History)(nil)

func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

func (r *History) Create(ctx context.Context, v *history.View) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(v).Error)
}

func (r *History) FindByUser(ctx context.Context, userID uuid.UUID) ([]history.View, error) {
	views := []history.View{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at, id").
		Find(&views).Error
	return views, translate(err)
}

// Subscribers is the gorm subscriber.Repository
type Subscribers struct {
	db *gorm.DB
}

var _ subscriber.Repository = (*Subscribers)(nil)

func NewSubscribers(db *gorm.DB) *Subscribers {
	return &Subscribers{db: db}
}

func (r *Subscribers) Create(ctx context.Context, s *subscriber.Subscriber) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *Subscribers) FindByEmail(ctx context.Context, email string) (*subscriber.Subscriber, error) {
	var s subscriber.Subscriber
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}
