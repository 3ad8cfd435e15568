package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const productTable = "m_savings_product"

// ProductRepository stores recurring deposit products in memory.
type ProductRepository struct {
	store *Store
}

var _ portsrepo.ProductRepositoryWithTx = (*ProductRepository)(nil)

func (r *ProductRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return txManager{store: r.store}.Begin(ctx)
}

func (r *ProductRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return txManager{store: r.store}.Commit(ctx, tx)
}

func (r *ProductRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return txManager{store: r.store}.Rollback(ctx, tx)
}

func (r *ProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res := make([]domain.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		res = append(res, cloneProduct(p))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *ProductRepository) SaveProduct(ctx context.Context, tx pgx.Tx, product *domain.Product) error {
	return r.store.write(tx, func() (func(), error) {
		if err := r.checkUnique(*product); err != nil {
			return nil, err
		}
		r.store.nextProductID++
		product.ID = r.store.nextProductID
		r.assignChartIDs(product)
		r.store.products[product.ID] = cloneProduct(*product)

		id := product.ID
		return func() { delete(r.store.products, id) }, nil
	})
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, tx pgx.Tx, product domain.Product) error {
	return r.store.write(tx, func() (func(), error) {
		prev, ok := r.store.products[product.ID]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		if err := r.checkUnique(product); err != nil {
			return nil, err
		}
		r.assignChartIDs(&product)
		r.store.products[product.ID] = cloneProduct(product)
		return func() { r.store.products[prev.ID] = prev }, nil
	})
}

// DeleteProduct removes the product and cascades to its GL mappings.
func (r *ProductRepository) DeleteProduct(ctx context.Context, tx pgx.Tx, productID int64) error {
	return r.store.write(tx, func() (func(), error) {
		prev, ok := r.store.products[productID]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		delete(r.store.products, productID)

		removed := map[mappingKey]domain.ProductGLMapping{}
		for k, m := range r.store.mappings {
			if k.productID == productID {
				removed[k] = m
				delete(r.store.mappings, k)
			}
		}
		return func() {
			r.store.products[productID] = prev
			for k, m := range removed {
				r.store.mappings[k] = m
			}
		}, nil
	})
}

// checkUnique mirrors the sp_unq_name and sp_unq_short_name indexes. Caller holds the lock.
func (r *ProductRepository) checkUnique(product domain.Product) error {
	for id, other := range r.store.products {
		if id == product.ID {
			continue
		}
		if other.Name == product.Name {
			return uniqueViolation(portsrepo.ProductNameConstraint, productTable)
		}
		if other.ShortName == product.ShortName {
			return uniqueViolation(portsrepo.ProductShortNameConstraint, productTable)
		}
	}
	return nil
}

func (r *ProductRepository) assignChartIDs(product *domain.Product) {
	for i := range product.Charts {
		if product.Charts[i].ID == 0 {
			r.store.nextChartID++
			product.Charts[i].ID = r.store.nextChartID
		}
		for j := range product.Charts[i].Slabs {
			if product.Charts[i].Slabs[j].ID == 0 {
				r.store.nextSlabID++
				product.Charts[i].Slabs[j].ID = r.store.nextSlabID
			}
		}
	}
}

func cloneProduct(p domain.Product) domain.Product {
	p.Currency.InMultiplesOf = cloneInt(p.Currency.InMultiplesOf)
	p.MinDepositTerm = cloneInt(p.MinDepositTerm)
	p.MaxDepositTerm = cloneInt(p.MaxDepositTerm)
	p.MinDepositAmount = cloneDecimal(p.MinDepositAmount)
	p.DepositAmount = cloneDecimal(p.DepositAmount)
	p.MaxDepositAmount = cloneDecimal(p.MaxDepositAmount)
	if p.TaxGroup != nil {
		tg := *p.TaxGroup
		p.TaxGroup = &tg
	}
	if p.Category != nil {
		cv := *p.Category
		p.Category = &cv
	}
	if p.Type != nil {
		cv := *p.Type
		p.Type = &cv
	}
	if p.Charges != nil {
		p.Charges = append([]domain.Charge(nil), p.Charges...)
	}
	if p.Charts != nil {
		charts := make([]domain.InterestRateChart, len(p.Charts))
		for i, c := range p.Charts {
			c.EndDate = cloneTime(c.EndDate)
			slabs := make([]domain.InterestRateSlab, len(c.Slabs))
			for j, s := range c.Slabs {
				s.ToPeriod = cloneInt(s.ToPeriod)
				slabs[j] = s
			}
			c.Slabs = slabs
			charts[i] = c
		}
		p.Charts = charts
	}
	return p
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneDecimal(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
