package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TransferRepo          TransferRepositoryFacade
	ProductRepo           ProductRepositoryWithTx
	ChargeRepo            ChargeReader
	TaxGroupRepo          TaxGroupReader
	CodeValueRepo         CodeValueReader
	GLAccountRepo         GLAccountReader
	AccountingMappingRepo AccountingMappingRepository
}
