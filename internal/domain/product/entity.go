// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Gender is the audience a product is merchandised for
type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	switch g {
	case GenderMen, GenderWomen, GenderUnisex:
		return true
	}
	return false
}

// Image is one entry of a product's ordered gallery
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// Dimensions are shipping dimensions in centimetres
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Product represents a catalog entry
type Product struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	SKU             string           `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name            string           `gorm:"not null;size:255" json:"name"`
	Description     string           `gorm:"type:text;not null" json:"description"`
	Price           decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"price"`
	DiscountPrice   *decimal.Decimal `gorm:"type:numeric(12,2)" json:"discountPrice,omitempty"`
	CountInStock    int              `gorm:"not null;default:0" json:"countInStock"`
	Category        string           `gorm:"not null;size:100;index" json:"category"`
	Brand           string           `gorm:"size:100;index" json:"brand"`
	Sizes           pq.StringArray   `gorm:"type:text[]" json:"sizes"`
	Colors          pq.StringArray   `gorm:"type:text[]" json:"colors"`
	Collection      string           `gorm:"not null;size:100;index" json:"collection"`
	Material        string           `gorm:"size:100" json:"material"`
	Gender          Gender           `gorm:"size:10;index" json:"gender"`
	Images          []Image          `gorm:"type:jsonb;serializer:json" json:"images"`
	IsFeatured      bool             `gorm:"default:false" json:"isFeatured"`
	IsPublished     bool             `gorm:"default:false;index" json:"isPublished"`
	Rating          float64          `gorm:"default:0" json:"rating"`
	NumReviews      int              `gorm:"default:0" json:"numReviews"`
	Tags            pq.StringArray   `gorm:"type:text[]" json:"tags"`
	UserID          *uuid.UUID       `gorm:"type:uuid;index" json:"user,omitempty"`
	MetaTitle       string           `gorm:"size:255" json:"metaTitle,omitempty"`
	MetaDescription string           `gorm:"size:500" json:"metaDescription,omitempty"`
	MetaKeywords    string           `gorm:"size:500" json:"metaKeywords,omitempty"`
	Dimensions      *Dimensions      `gorm:"type:jsonb;serializer:json" json:"dimensions,omitempty"`
	Weight          float64          `json:"weight,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// FirstImage returns the URL of the first gallery image, or ""
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// HasSize reports whether the product is offered in any of sizes
func (p *Product) HasSize(sizes ...string) bool {
	return containsAny(p.Sizes, sizes)
}

// HasColor reports whether the product is offered in color
func (p *Product) HasColor(color string) bool {
	return containsAny(p.Colors, []string{color})
}

func containsAny(have []string, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
