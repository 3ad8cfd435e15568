package pgsql

import (
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transferRepo := newPgxTransferRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	referenceRepo := newPgxReferenceRepository(dbPool)
	mappingRepo := newPgxAccountingMappingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransferRepo:          transferRepo,
		ProductRepo:           productRepo,
		ChargeRepo:            referenceRepo,
		TaxGroupRepo:          referenceRepo,
		CodeValueRepo:         referenceRepo,
		GLAccountRepo:         referenceRepo,
		AccountingMappingRepo: mappingRepo,
	}
}
