// internal/domain/history/entity.go
package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// View is one append-only browsing event
type View struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_views_user_viewed" json:"user"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	ViewedAt  time.Time `gorm:"not null;index:idx_views_user_viewed" json:"viewedAt"`
}

// TableName overrides the table name
func (View) TableName() string {
	return "browsing_history"
}

// Entry is a view with its product resolved for display
type Entry struct {
	View
	Product product.Product `json:"product"`
}
