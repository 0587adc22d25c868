// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/favorite"
	"github.com/your-org/storefront-backend/internal/domain/history"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/subscriber"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	models := []interface{}{
		&user.User{},
		&product.Product{},
		&cart.Cart{},
		&checkout.Checkout{},
		&order.Order{},
		&favorite.Favorite{},
		&history.View{},
		&subscriber.Subscriber{},
	}

	for _, model := range models {
		m.logger.WithField("model", fmt.Sprintf("%T", model)).Debug("Migrating model")
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates the indexes gorm tags cannot express
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_rating ON products(rating DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_sizes ON products USING GIN (sizes)",
		"CREATE INDEX IF NOT EXISTS idx_products_colors ON products USING GIN (colors)",
		"CREATE INDEX IF NOT EXISTS idx_products_published_featured ON products(is_published, is_featured)",

		"CREATE INDEX IF NOT EXISTS idx_carts_guest_anonymous ON carts(guest_id) WHERE user_id IS NULL",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_browsing_history_user_viewed ON browsing_history(user_id, viewed_at)",
	}

	failed := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).WithField("sql", indexSQL).Warn("Failed to create index")
			failed++
		}
	}

	m.logger.WithFields(logrus.Fields{
		"created": len(indexes) - failed,
		"failed":  failed,
	}).Info("Database indexes ensured")
	return nil
}

// SeedInitialData inserts the admin account and a starter catalog
func (m *Migration) SeedInitialData(adminEmail, adminPassword string) error {
	m.logger.Info("Seeding initial data")

	admin, err := m.seedAdminUser(adminEmail, adminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedProducts(admin.ID); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	m.logger.Info("Initial data seeded")
	return nil
}

func (m *Migration) seedAdminUser(email, password string) (*user.User, error) {
	var existing user.User
	err := m.db.Where("email = ?", user.NormalizeEmail(email)).First(&existing).Error
	if err == nil {
		m.logger.WithField("email", existing.Email).Debug("Admin user already exists")
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := user.User{
		ID:       uuid.New(),
		Name:     "Admin User",
		Email:    email,
		Password: string(hashed),
		Role:     user.RoleAdmin,
	}
	if err := m.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	m.logger.WithField("email", admin.Email).Info("Created admin user")
	return &admin, nil
}

func (m *Migration) seedProducts(owner uuid.UUID) error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.logger.WithField("count", count).Debug("Catalog already populated")
		return nil
	}

	price := decimal.RequireFromString
	sale := func(v string) *decimal.Decimal {
		d := decimal.RequireFromString(v)
		return &d
	}

	seed := []product.Product{
		{
			SKU: "TW-CAS-001", Name: "Classic Oxford Button-Down Shirt",
			Description: "Soft cotton oxford shirt with a button-down collar and a relaxed fit.",
			Price:       price("39.99"), DiscountPrice: sale("34.99"), CountInStock: 20,
			Category: "Top Wear", Brand: "Urban Threads", Collection: "Business Casual", Material: "Cotton",
			Gender: product.GenderMen, Sizes: pq.StringArray{"S", "M", "L", "XL"}, Colors: pq.StringArray{"White", "Blue"},
			Images: []product.Image{{URL: "https://picsum.photos/seed/oxford/500/500", AltText: "Oxford shirt"}},
			Rating: 4.5, NumReviews: 12, IsFeatured: true, Tags: pq.StringArray{"shirt", "oxford"},
		},
		{
			SKU: "TW-CAS-002", Name: "Relaxed Linen Tee",
			Description: "Breathable linen blend tee for warm days.",
			Price:       price("24.99"), CountInStock: 35,
			Category: "Top Wear", Brand: "Beach Breeze", Collection: "Casual Wear", Material: "Linen",
			Gender: product.GenderWomen, Sizes: pq.StringArray{"XS", "S", "M", "L"}, Colors: pq.StringArray{"Beige", "Green"},
			Images: []product.Image{{URL: "https://picsum.photos/seed/linen/500/500", AltText: "Linen tee"}},
			Rating: 4.2, NumReviews: 8, Tags: pq.StringArray{"tee", "linen"},
		},
		{
			SKU: "BW-CAS-001", Name: "Slim Fit Chinos",
			Description: "Stretch cotton chinos with a tapered leg.",
			Price:       price("49.99"), DiscountPrice: sale("44.99"), CountInStock: 18,
			Category: "Bottom Wear", Brand: "Modern Fit", Collection: "Business Casual", Material: "Cotton",
			Gender: product.GenderMen, Sizes: pq.StringArray{"30", "32", "34", "36"}, Colors: pq.StringArray{"Navy", "Beige"},
			Images: []product.Image{{URL: "https://picsum.photos/seed/chinos/500/500", AltText: "Chinos"}},
			Rating: 4.6, NumReviews: 21, IsFeatured: true, Tags: pq.StringArray{"chinos", "trousers"},
		},
		{
			SKU: "BW-CAS-002", Name: "High-Rise Denim Jeans",
			Description: "Classic five pocket jeans in rigid denim.",
			Price:       price("59.99"), CountInStock: 0,
			Category: "Bottom Wear", Brand: "Street Style", Collection: "Casual Wear", Material: "Denim",
			Gender: product.GenderWomen, Sizes: pq.StringArray{"S", "M", "L"}, Colors: pq.StringArray{"Blue", "Black"},
			Images: []product.Image{{URL: "https://picsum.photos/seed/denim/500/500", AltText: "Denim jeans"}},
			Rating: 4.1, NumReviews: 5, Tags: pq.StringArray{"jeans", "denim"},
		},
		{
			SKU: "TW-FRM-001", Name: "Tailored Wool Blazer",
			Description: "Half-lined wool blazer with notch lapels.",
			Price:       price("149.99"), CountInStock: 7,
			Category: "Top Wear", Brand: "Fashionista", Collection: "Formal Wear", Material: "Wool",
			Gender: product.GenderUnisex, Sizes: pq.StringArray{"M", "L", "XL"}, Colors: pq.StringArray{"Black", "Gray"},
			Images: []product.Image{{URL: "https://picsum.photos/seed/blazer/500/500", AltText: "Wool blazer"}},
			Rating: 4.8, NumReviews: 30, IsFeatured: true, Tags: pq.StringArray{"blazer", "formal"},
		},
	}

	for i := range seed {
		seed[i].ID = uuid.New()
		seed[i].IsPublished = true
		seed[i].UserID = &owner
		if err := m.db.Create(&seed[i]).Error; err != nil {
			m.logger.WithError(err).WithField("sku", seed[i].SKU).Warn("Failed to seed product")
			continue
		}
		m.logger.WithField("sku", seed[i].SKU).Debug("Seeded product")
	}
	return nil
}

// DropAllTables drops every storefront table
func (m *Migration) DropAllTables() error {
	m.logger.Warn("Dropping all database tables")

	tables := []string{
		"subscribers",
		"browsing_history",
		"favorites",
		"orders",
		"checkouts",
		"carts",
		"products",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
		m.logger.WithField("table", table).Info("Dropped table")
	}
	return nil
}
