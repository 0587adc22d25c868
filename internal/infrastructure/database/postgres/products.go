// internal/infrastructure/database/postgres/products.go
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Products is the gorm product.Repository
type Products struct {
	db *gorm.DB
}

var _ product.Repository = (*Products)(nil)

func NewProducts(db *gorm.DB) *Products {
	return &Products{db: db}
}

func (r *Products) Create(ctx context.Context, p *product.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *Products) Update(ctx context.Context, p *product.Product) error {
	return affected(r.db.WithContext(ctx).Model(p).Select("*").Omit("created_at").Updates(p))
}

func (r *Products) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&product.Product{}, "id = ?", id))
}

func (r *Products) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	var p product.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *Products) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	var p product.Product
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *Products) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]product.Product, error) {
	products := []product.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (r *Products) Find(ctx context.Context, f product.Filter) ([]product.Product, error) {
	query := r.db.WithContext(ctx).Model(&product.Product{})

	if f.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if f.ExcludeID != nil {
		query = query.Where("id <> ?", *f.ExcludeID)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Gender != "" {
		query = query.Where("gender = ?", f.Gender)
	}
	if f.Collection != "" {
		query = query.Where("collection = ?", f.Collection)
	}
	if len(f.Collections) > 0 {
		query = query.Where("collection IN ?", f.Collections)
	}
	if len(f.Materials) > 0 {
		query = query.Where("material IN ?", f.Materials)
	}
	if len(f.Brands) > 0 {
		query = query.Where("brand IN ?", f.Brands)
	}
	if len(f.Sizes) > 0 {
		query = query.Where("sizes && ?", pq.Array(f.Sizes))
	}
	if f.Color != "" {
		query = query.Where("? = ANY(colors)", f.Color)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where("(name ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	switch f.Sort {
	case product.SortPriceAsc:
		query = query.Order("price ASC")
	case product.SortPriceDesc:
		query = query.Order("price DESC")
	case product.SortPopularity:
		query = query.Order("rating DESC")
	case product.SortNewest:
		query = query.Order("created_at DESC")
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	products := []product.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}
