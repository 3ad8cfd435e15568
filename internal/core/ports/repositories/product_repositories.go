package repositories

import (
	"context"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ProductReader defines read operations for recurring deposit products.
type ProductReader interface {
	// FindProductByID loads a product with its charges, tax group, charts and classifications.
	FindProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// ListProducts returns every product ordered by id.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for recurring deposit products.
// A nil tx runs the statement outside any transaction.
type ProductWriter interface {
	// SaveProduct inserts the product and its owned rows and sets the generated ID.
	SaveProduct(ctx context.Context, tx pgx.Tx, product *domain.Product) error

	// UpdateProduct rewrites the product row and its owned rows.
	UpdateProduct(ctx context.Context, tx pgx.Tx, product domain.Product) error

	// DeleteProduct removes the product.
	DeleteProduct(ctx context.Context, tx pgx.Tx, productID int64) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

// ProductRepositoryWithTx extends ProductRepositoryFacade with transaction capabilities
type ProductRepositoryWithTx interface {
	ProductRepositoryFacade
	TransactionManager
}

// Unique constraints guarding recurring deposit product names.
const (
	ProductNameConstraint      = "sp_unq_name"
	ProductShortNameConstraint = "sp_unq_short_name"
)
