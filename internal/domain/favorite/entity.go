// internal/domain/favorite/entity.go
package favorite

import (
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Favorite is a (user, product) pair, unique per pair
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_product" json:"user"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_product" json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name
func (Favorite) TableName() string {
	return "favorites"
}

// Entry is a favorite with its product resolved for display
type Entry struct {
	Favorite
	Product product.Product `json:"product"`
}
