package presale

import (
	"context"
	"sync"

	"github.com/sealstudios/presale/src/utils/model"
)

// MemoryStore is an in-memory Repository used in development mode and in
// tests. One mutex spans the whole InTransaction invocation, which gives
// it the same isolation the postgres store gets from row locks. Writes
// are buffered and applied only when fn returns without error.
type MemoryStore struct {
	mtx sync.Mutex

	sales         map[string]model.Sale
	participants  map[string]model.Participant
	contributions []model.Contribution
	accounts      map[string]model.TreasuryAccount
}

// memoryTx is the view passed to InTransaction callbacks. It reads through
// to the parent and keeps writes local until commit.
type memoryTx struct {
	parent *MemoryStore

	sales         map[string]model.Sale
	participants  map[string]model.Participant
	contributions []model.Contribution
	accounts      map[string]model.TreasuryAccount
}

func NewMemoryStore() (self *MemoryStore) {
	self = new(MemoryStore)
	self.sales = make(map[string]model.Sale)
	self.participants = make(map[string]model.Participant)
	self.accounts = make(map[string]model.TreasuryAccount)
	return
}

func participantKey(saleId, address string) string {
	return saleId + "/" + address
}

func (self *MemoryStore) InTransaction(ctx context.Context, fn func(tx Repository) error) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	tx := &memoryTx{
		parent:       self,
		sales:        make(map[string]model.Sale),
		participants: make(map[string]model.Participant),
		accounts:     make(map[string]model.TreasuryAccount),
	}

	err = fn(tx)
	if err != nil {
		// Buffered writes are discarded
		return
	}

	for id, sale := range tx.sales {
		self.sales[id] = sale
	}
	for key, participant := range tx.participants {
		self.participants[key] = participant
	}
	for address, account := range tx.accounts {
		self.accounts[address] = account
	}
	self.contributions = append(self.contributions, tx.contributions...)
	return
}

func (self *MemoryStore) CreateSale(ctx context.Context, sale *model.Sale) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	if _, ok := self.sales[sale.ID]; ok {
		return ErrSaleExists
	}
	self.sales[sale.ID] = *sale
	return nil
}

func (self *MemoryStore) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	sale, ok := self.sales[id]
	if !ok {
		return nil, ErrSaleNotFound
	}
	return &sale, nil
}

func (self *MemoryStore) LockSale(ctx context.Context, id string) (*model.Sale, error) {
	// Outside a transaction a lock is just a read
	return self.GetSale(ctx, id)
}

func (self *MemoryStore) SaveSale(ctx context.Context, sale *model.Sale) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.sales[sale.ID] = *sale
	return nil
}

func (self *MemoryStore) GetParticipant(ctx context.Context, saleId, address string) (*model.Participant, error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	participant, ok := self.participants[participantKey(saleId, address)]
	if !ok {
		return nil, nil
	}
	return &participant, nil
}

func (self *MemoryStore) LockParticipant(ctx context.Context, saleId, address string) (*model.Participant, error) {
	return self.GetParticipant(ctx, saleId, address)
}

func (self *MemoryStore) SaveParticipant(ctx context.Context, participant *model.Participant) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.participants[participantKey(participant.SaleID, participant.Address)] = *participant
	return nil
}

func (self *MemoryStore) AppendContribution(ctx context.Context, contribution *model.Contribution) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.contributions = append(self.contributions, *contribution)
	return nil
}

func (self *MemoryStore) ListContributions(ctx context.Context, saleId, contributor string, limit int) (out []*model.Contribution, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	for i := range self.contributions {
		if limit > 0 && len(out) >= limit {
			break
		}
		contribution := self.contributions[i]
		if contribution.SaleID != saleId {
			continue
		}
		if contributor != "" && contribution.Contributor != contributor {
			continue
		}
		out = append(out, &contribution)
	}
	return
}

func (self *MemoryStore) GetAccount(ctx context.Context, address string) (*model.TreasuryAccount, error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	account, ok := self.accounts[address]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (self *MemoryStore) LockAccount(ctx context.Context, address string) (*model.TreasuryAccount, error) {
	return self.GetAccount(ctx, address)
}

func (self *MemoryStore) SaveAccount(ctx context.Context, account *model.TreasuryAccount) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.accounts[account.Address] = *account
	return nil
}

func (self *memoryTx) InTransaction(ctx context.Context, fn func(tx Repository) error) error {
	// Already inside a transaction, reuse the same view
	return fn(self)
}

func (self *memoryTx) CreateSale(ctx context.Context, sale *model.Sale) error {
	if _, ok := self.sales[sale.ID]; ok {
		return ErrSaleExists
	}
	if _, ok := self.parent.sales[sale.ID]; ok {
		return ErrSaleExists
	}
	self.sales[sale.ID] = *sale
	return nil
}

func (self *memoryTx) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	if sale, ok := self.sales[id]; ok {
		return &sale, nil
	}
	sale, ok := self.parent.sales[id]
	if !ok {
		return nil, ErrSaleNotFound
	}
	return &sale, nil
}

func (self *memoryTx) LockSale(ctx context.Context, id string) (*model.Sale, error) {
	return self.GetSale(ctx, id)
}

func (self *memoryTx) SaveSale(ctx context.Context, sale *model.Sale) error {
	self.sales[sale.ID] = *sale
	return nil
}

func (self *memoryTx) GetParticipant(ctx context.Context, saleId, address string) (*model.Participant, error) {
	if participant, ok := self.participants[participantKey(saleId, address)]; ok {
		return &participant, nil
	}
	participant, ok := self.parent.participants[participantKey(saleId, address)]
	if !ok {
		return nil, nil
	}
	return &participant, nil
}

func (self *memoryTx) LockParticipant(ctx context.Context, saleId, address string) (*model.Participant, error) {
	return self.GetParticipant(ctx, saleId, address)
}

func (self *memoryTx) SaveParticipant(ctx context.Context, participant *model.Participant) error {
	self.participants[participantKey(participant.SaleID, participant.Address)] = *participant
	return nil
}

func (self *memoryTx) AppendContribution(ctx context.Context, contribution *model.Contribution) error {
	self.contributions = append(self.contributions, *contribution)
	return nil
}

func (self *memoryTx) ListContributions(ctx context.Context, saleId, contributor string, limit int) (out []*model.Contribution, err error) {
	// Parent mutex is already held by the surrounding InTransaction
	merged := append(append([]model.Contribution{}, self.parent.contributions...), self.contributions...)
	for i := range merged {
		if limit > 0 && len(out) >= limit {
			break
		}
		contribution := merged[i]
		if contribution.SaleID != saleId {
			continue
		}
		if contributor != "" && contribution.Contributor != contributor {
			continue
		}
		out = append(out, &contribution)
	}
	return
}

func (self *memoryTx) GetAccount(ctx context.Context, address string) (*model.TreasuryAccount, error) {
	if account, ok := self.accounts[address]; ok {
		return &account, nil
	}
	account, ok := self.parent.accounts[address]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (self *memoryTx) LockAccount(ctx context.Context, address string) (*model.TreasuryAccount, error) {
	return self.GetAccount(ctx, address)
}

func (self *memoryTx) SaveAccount(ctx context.Context, account *model.TreasuryAccount) error {
	self.accounts[account.Address] = *account
	return nil
}
