// internal/infrastructure/database/postgres/users.go
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Users is the gorm user.Repository
type Users struct {
	db *gorm.DB
}

var _ user.Repository = (*Users)(nil)

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (r *Users) Create(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *Users) Update(ctx context.Context, u *user.User) error {
	return affected(r.db.WithContext(ctx).Model(u).Select("name", "email", "password", "role", "updated_at").Updates(u))
}

func (r *Users) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&user.User{}, "id = ?", id))
}

func (r *Users) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("email = ?", user.NormalizeEmail(email)).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *Users) FindAll(ctx context.Context) ([]user.User, error) {
	users := []user.User{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, translate(err)
}
