package tier

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sealstudios/presale/src/utils/model"
)

// Store persists the single tier registry row.
type Store interface {
	InTransaction(ctx context.Context, fn func(tx Store) error) error

	CreateRegistry(ctx context.Context, registry *model.TierRegistry) error
	GetRegistry(ctx context.Context) (*model.TierRegistry, error)

	// LockRegistry acquires a row lock, valid inside InTransaction only
	LockRegistry(ctx context.Context) (*model.TierRegistry, error)
	SaveRegistry(ctx context.Context, registry *model.TierRegistry) error
}

// DbStore is the gorm-backed Store.
type DbStore struct {
	DB *gorm.DB
}

func NewDbStore(db *gorm.DB) (self *DbStore) {
	self = new(DbStore)
	self.DB = db
	return
}

func (self *DbStore) InTransaction(ctx context.Context, fn func(tx Store) error) error {
	return self.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DbStore{DB: tx})
	})
}

func (self *DbStore) CreateRegistry(ctx context.Context, registry *model.TierRegistry) (err error) {
	registry.Id = 1
	err = self.DB.WithContext(ctx).Create(registry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return
}

func (self *DbStore) GetRegistry(ctx context.Context) (registry *model.TierRegistry, err error) {
	registry = new(model.TierRegistry)
	err = self.DB.WithContext(ctx).First(registry, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *DbStore) LockRegistry(ctx context.Context) (registry *model.TierRegistry, err error) {
	registry = new(model.TierRegistry)
	err = self.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(registry, 1).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *DbStore) SaveRegistry(ctx context.Context, registry *model.TierRegistry) error {
	return self.DB.WithContext(ctx).Save(registry).Error
}

// MemoryStore keeps the registry in memory, used by tests.
type MemoryStore struct {
	mtx      sync.Mutex
	registry *model.TierRegistry
}

func NewMemoryStore() *MemoryStore {
	return new(MemoryStore)
}

func (self *MemoryStore) InTransaction(ctx context.Context, fn func(tx Store) error) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	snapshot := self.registry
	var copied *model.TierRegistry
	if snapshot != nil {
		c := *snapshot
		copied = &c
	}

	err = fn(&memoryTx{parent: self, registry: copied})
	if err != nil {
		self.registry = snapshot
	}
	return
}

func (self *MemoryStore) CreateRegistry(ctx context.Context, registry *model.TierRegistry) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if self.registry != nil {
		return ErrAlreadyExists
	}
	registry.Id = 1
	copied := *registry
	self.registry = &copied
	return nil
}

func (self *MemoryStore) GetRegistry(ctx context.Context) (*model.TierRegistry, error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if self.registry == nil {
		return nil, ErrNotInitialized
	}
	copied := *self.registry
	return &copied, nil
}

func (self *MemoryStore) LockRegistry(ctx context.Context) (*model.TierRegistry, error) {
	return self.GetRegistry(ctx)
}

func (self *MemoryStore) SaveRegistry(ctx context.Context, registry *model.TierRegistry) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	copied := *registry
	self.registry = &copied
	return nil
}

type memoryTx struct {
	parent   *MemoryStore
	registry *model.TierRegistry
}

func (self *memoryTx) InTransaction(ctx context.Context, fn func(tx Store) error) error {
	return fn(self)
}

func (self *memoryTx) CreateRegistry(ctx context.Context, registry *model.TierRegistry) error {
	if self.registry != nil {
		return ErrAlreadyExists
	}
	registry.Id = 1
	copied := *registry
	self.registry = &copied
	self.parent.registry = &copied
	return nil
}

func (self *memoryTx) GetRegistry(ctx context.Context) (*model.TierRegistry, error) {
	if self.registry == nil {
		return nil, ErrNotInitialized
	}
	copied := *self.registry
	return &copied, nil
}

func (self *memoryTx) LockRegistry(ctx context.Context) (*model.TierRegistry, error) {
	return self.GetRegistry(ctx)
}

func (self *memoryTx) SaveRegistry(ctx context.Context, registry *model.TierRegistry) error {
	copied := *registry
	self.registry = &copied
	self.parent.registry = &copied
	return nil
}
