// internal/domain/subscriber/entity.go
package subscriber

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter signup. Records are write-once.
type Subscriber struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	SubscribedAt time.Time `gorm:"not null" json:"subscribedAt"`
}

// TableName overrides the table name
func (Subscriber) TableName() string {
	return "subscribers"
}
