// Package memory is an in-process implementation of the order and zone stores.
// It keeps the same compare-and-swap contract as the Postgres adapter and is used
// when STORE_DRIVER=memory and in tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

// Store holds all state behind one RWMutex.
type Store struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]order.RestoreOrderParams
	zones  map[string][]zone.Params
}

func NewStore() *Store {
	return &Store{
		orders: make(map[uuid.UUID]order.RestoreOrderParams),
		zones:  make(map[string][]zone.Params),
	}
}

// OrderRepository returns a repository whose writes apply immediately.
func (s *Store) OrderRepository() *OrderRepository {
	return &OrderRepository{store: s}
}

// ZoneRepository returns a repository whose writes apply immediately.
func (s *Store) ZoneRepository() *ZoneRepository {
	return &ZoneRepository{store: s}
}

// change is a buffered write: check runs for every change before any apply runs,
// all under the write lock, so a commit is all-or-nothing.
type change struct {
	check func(s *Store) error
	apply func(s *Store)
	after func()
}

func (s *Store) commit(changes []change) error {
	s.mu.Lock()
	for _, c := range changes {
		if c.check == nil {
			continue
		}
		if err := c.check(s); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	for _, c := range changes {
		c.apply(s)
	}
	s.mu.Unlock()

	for _, c := range changes {
		if c.after != nil {
			c.after()
		}
	}
	return nil
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes until Commit. Reads see committed state only.
type UnitOfWork struct {
	mu      sync.Mutex
	store   *Store
	active  bool
	pending []change
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.active {
		return nil
	}
	u.active = true
	u.pending = nil
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	u.mu.Lock()
	if !u.active {
		u.mu.Unlock()
		return ErrNoActiveTransaction
	}
	pending := u.pending
	u.active = false
	u.pending = nil
	u.mu.Unlock()

	return u.store.commit(pending)
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.active = false
	u.pending = nil
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: u.store, uow: u}
}

func (u *UnitOfWork) ZoneRepository() ports.ZoneRepository {
	return &ZoneRepository{store: u.store, uow: u}
}

// enqueue buffers c when a transaction is open and reports whether it did.
func (u *UnitOfWork) enqueue(c change) bool {
	if u == nil {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.active {
		return false
	}
	u.pending = append(u.pending, c)
	return true
}

func write(store *Store, uow *UnitOfWork, c change) error {
	if uow.enqueue(c) {
		return nil
	}
	return store.commit([]change{c})
}
