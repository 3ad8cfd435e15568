package services

import (
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	portssvc "github.com/fiterunited/fineract-template/internal/core/ports/services"
	"github.com/fiterunited/fineract-template/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transfer = NewTransferService(repos.TransferRepo)

	// The product engine collaborators are built first; the engine only sees their ports.
	container.Product = NewProductService(
		repos.ProductRepo,
		WithProductValidator(NewProductValidator()),
		WithProductAssembler(NewProductAssembler(repos.ChargeRepo, repos.TaxGroupRepo)),
		WithClassificationLookup(NewClassificationLookup(repos.CodeValueRepo)),
		WithAccountingMappingSynchronizer(NewAccountingMappingService(repos.AccountingMappingRepo, repos.GLAccountRepo)),
	)

	return container
}
