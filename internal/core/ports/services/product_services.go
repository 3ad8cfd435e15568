package services

import (
	"context"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ProductReaderSvc defines read operations for recurring deposit products.
type ProductReaderSvc interface {
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriterSvc defines the product configuration workflows.
type ProductWriterSvc interface {
	// CreateProduct validates and persists a product with its accounting mappings.
	CreateProduct(ctx context.Context, cmd domain.ProductCommand, userID string) (int64, error)

	// UpdateProduct applies a partial update and returns exactly the fields it changed.
	UpdateProduct(ctx context.Context, productID int64, cmd domain.ProductCommand, userID string) (int64, domain.ChangeSet, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, productID int64) (int64, error)
}

// ProductSvcFacade combines all product service interfaces.
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}

// ProductValidator checks command payloads before anything is loaded or written.
type ProductValidator interface {
	ValidateForCreate(cmd domain.ProductCommand) error
	ValidateForUpdate(cmd domain.ProductCommand) error
}

// ProductAssembler builds products and their sub-resources from commands.
type ProductAssembler interface {
	// AssembleProduct builds a new, unsaved product.
	AssembleProduct(ctx context.Context, cmd domain.ProductCommand) (*domain.Product, error)

	// AssembleCharges resolves the command's charges; each must be an active
	// savings charge in the given currency.
	AssembleCharges(ctx context.Context, cmd domain.ProductCommand, currencyCode string) ([]domain.Charge, error)

	// AssembleTaxGroup resolves taxGroupId; absent or null yields nil.
	AssembleTaxGroup(ctx context.Context, cmd domain.ProductCommand) (*domain.TaxGroup, error)

	// AssembleCharts builds the interest rate charts sent in the command.
	AssembleCharts(cmd domain.ProductCommand) ([]domain.InterestRateChart, error)
}

// ClassificationLookup resolves product category and type values.
type ClassificationLookup interface {
	FindByCodeNameAndID(ctx context.Context, codeName string, codeValueID int64) (*domain.CodeValue, error)
}

// AccountingMappingSynchronizer keeps a product's GL account mappings in step
// with its accounting rule.
type AccountingMappingSynchronizer interface {
	CreateMapping(ctx context.Context, tx pgx.Tx, productID int64, cmd domain.ProductCommand, productType domain.DepositAccountType) error
	UpdateMapping(ctx context.Context, tx pgx.Tx, productID int64, cmd domain.ProductCommand, accountingTypeChanged bool, rule domain.AccountingRuleType, productType domain.DepositAccountType) (domain.ChangeSet, error)
}
