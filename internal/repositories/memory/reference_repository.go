package memory

import (
	"context"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
)

// ReferenceRepository serves the externally owned reference data products point at.
type ReferenceRepository struct {
	store *Store
}

var (
	_ portsrepo.ChargeReader    = (*ReferenceRepository)(nil)
	_ portsrepo.TaxGroupReader  = (*ReferenceRepository)(nil)
	_ portsrepo.CodeValueReader = (*ReferenceRepository)(nil)
	_ portsrepo.GLAccountReader = (*ReferenceRepository)(nil)
)

func (r *ReferenceRepository) FindChargeByID(ctx context.Context, chargeID int64) (*domain.Charge, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.charges[chargeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *ReferenceRepository) FindTaxGroupByID(ctx context.Context, taxGroupID int64) (*domain.TaxGroup, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tg, ok := r.store.taxGroups[taxGroupID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &tg, nil
}

func (r *ReferenceRepository) FindCodeValueByCodeNameAndID(ctx context.Context, codeName string, codeValueID int64) (*domain.CodeValue, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cv, ok := r.store.codeValues[codeValueID]
	if !ok || cv.CodeName != codeName {
		return nil, apperrors.ErrNotFound
	}
	return &cv, nil
}

func (r *ReferenceRepository) FindGLAccountByID(ctx context.Context, glAccountID int64) (*domain.GLAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.glAccounts[glAccountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

// PutCharge adds or replaces a charge definition.
func (s *Store) PutCharge(c domain.Charge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charges[c.ID] = c
}

// PutTaxGroup adds or replaces a tax group.
func (s *Store) PutTaxGroup(tg domain.TaxGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taxGroups[tg.ID] = tg
}

// PutCodeValue adds or replaces a classification value.
func (s *Store) PutCodeValue(cv domain.CodeValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codeValues[cv.ID] = cv
}

// PutGLAccount adds or replaces a general ledger account.
func (s *Store) PutGLAccount(a domain.GLAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.glAccounts[a.ID] = a
}
