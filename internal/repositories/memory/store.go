// Package memory keeps repository state in process. It backs the service tests
// and the STORAGE_BACKEND=memory mode, and reproduces the unique indexes and
// reversal filters of the PostgreSQL schema.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	portsrepo "github.com/fiterunited/fineract-template/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

var errForeignTx = errors.New("memory: transaction was not started by this store")

type mappingKey struct {
	productID   int64
	productType domain.DepositAccountType
	activity    domain.FinancialActivity
}

// Store holds every table of the in-memory backend behind one mutex.
type Store struct {
	mu sync.Mutex

	transfers      map[int64]domain.AccountTransferTransaction
	nextTransferID int64

	products      map[int64]domain.Product
	nextProductID int64
	nextChartID   int64
	nextSlabID    int64

	charges    map[int64]domain.Charge
	taxGroups  map[int64]domain.TaxGroup
	codeValues map[int64]domain.CodeValue
	glAccounts map[int64]domain.GLAccount

	mappings      map[mappingKey]domain.ProductGLMapping
	nextMappingID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		transfers:  map[int64]domain.AccountTransferTransaction{},
		products:   map[int64]domain.Product{},
		charges:    map[int64]domain.Charge{},
		taxGroups:  map[int64]domain.TaxGroup{},
		codeValues: map[int64]domain.CodeValue{},
		glAccounts: map[int64]domain.GLAccount{},
		mappings:   map[mappingKey]domain.ProductGLMapping{},
	}
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransferRepo:          &TransferRepository{store: store},
		ProductRepo:           &ProductRepository{store: store},
		ChargeRepo:            &ReferenceRepository{store: store},
		TaxGroupRepo:          &ReferenceRepository{store: store},
		CodeValueRepo:         &ReferenceRepository{store: store},
		GLAccountRepo:         &ReferenceRepository{store: store},
		AccountingMappingRepo: &AccountingMappingRepository{store: store},
	}
}

// write runs fn under the store lock. When tx is a store transaction the
// returned undo func is kept for rollback; a nil tx commits immediately.
func (s *Store) write(tx pgx.Tx, fn func() (undo func(), err error)) error {
	var mtx *memTx
	if tx != nil {
		var ok bool
		if mtx, ok = tx.(*memTx); !ok || mtx.store != s {
			return errForeignTx
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if mtx != nil && mtx.done {
		return pgx.ErrTxClosed
	}
	undo, err := fn()
	if err != nil {
		return err
	}
	if mtx != nil && undo != nil {
		mtx.undo = append(mtx.undo, undo)
	}
	return nil
}

func (s *Store) begin() *memTx {
	return &memTx{store: s}
}

// memTx is a pgx.Tx whose writes are applied eagerly and reverted on rollback.
// Only Commit and Rollback are usable; the store never issues SQL.
type memTx struct {
	pgx.Tx
	store *Store
	undo  []func()
	done  bool
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("memory: nested transactions are not supported")
}

func (t *memTx) Commit(ctx context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.undo = nil
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.done = true
	t.undo = nil
	return nil
}

// txManager implements portsrepo.TransactionManager over the store.
type txManager struct {
	store *Store
}

func (m txManager) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.store.begin(), nil
}

func (m txManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (m txManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return tx.Rollback(ctx)
}

func uniqueViolation(constraint, table string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           uniqueViolationCode,
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}
