package memory

import (
	"context"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// AccountingMappingRepository stores product to GL account mappings in memory.
type AccountingMappingRepository struct {
	store *Store
}

var _ portsrepo.AccountingMappingRepository = (*AccountingMappingRepository)(nil)

func (r *AccountingMappingRepository) FindMappings(ctx context.Context, productID int64, productType domain.DepositAccountType) (map[domain.FinancialActivity]domain.ProductGLMapping, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res := map[domain.FinancialActivity]domain.ProductGLMapping{}
	for k, m := range r.store.mappings {
		if k.productID == productID && k.productType == productType {
			res[k.activity] = m
		}
	}
	return res, nil
}

func (r *AccountingMappingRepository) SaveMapping(ctx context.Context, tx pgx.Tx, mapping domain.ProductGLMapping) error {
	return r.store.write(tx, func() (func(), error) {
		key := mappingKey{productID: mapping.ProductID, productType: mapping.ProductType, activity: mapping.Activity}
		prev, existed := r.store.mappings[key]
		if existed {
			mapping.ID = prev.ID
		} else if mapping.ID == 0 {
			r.store.nextMappingID++
			mapping.ID = r.store.nextMappingID
		}
		r.store.mappings[key] = mapping
		return func() {
			if existed {
				r.store.mappings[key] = prev
				return
			}
			delete(r.store.mappings, key)
		}, nil
	})
}

func (r *AccountingMappingRepository) DeleteMappings(ctx context.Context, tx pgx.Tx, productID int64, productType domain.DepositAccountType) error {
	return r.store.write(tx, func() (func(), error) {
		removed := map[mappingKey]domain.ProductGLMapping{}
		for k, m := range r.store.mappings {
			if k.productID == productID && k.productType == productType {
				removed[k] = m
				delete(r.store.mappings, k)
			}
		}
		return func() {
			for k, m := range removed {
				r.store.mappings[k] = m
			}
		}, nil
	})
}
