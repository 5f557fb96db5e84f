package presale

import (
	"context"
	"errors"

	"github.com/sealstudios/presale/src/utils/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the postgres-backed Repository. Row locks (SELECT ... FOR
// UPDATE) on the sale, participant and treasury rows make the
// read-validate-commit sequence of one contribution indivisible with
// respect to concurrent contributions against the same sale.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) (self *Store) {
	self = new(Store)
	self.DB = db
	return
}

func (self *Store) InTransaction(ctx context.Context, fn func(tx Repository) error) error {
	return self.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{DB: tx})
	})
}

func (self *Store) CreateSale(ctx context.Context, sale *model.Sale) (err error) {
	err = self.DB.WithContext(ctx).Create(sale).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSaleExists
	}
	return
}

func (self *Store) GetSale(ctx context.Context, id string) (sale *model.Sale, err error) {
	sale = new(model.Sale)
	err = self.DB.WithContext(ctx).First(sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *Store) LockSale(ctx context.Context, id string) (sale *model.Sale, err error) {
	sale = new(model.Sale)
	err = self.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(sale, "id = ?", id).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *Store) SaveSale(ctx context.Context, sale *model.Sale) error {
	return self.DB.WithContext(ctx).Save(sale).Error
}

func (self *Store) GetParticipant(ctx context.Context, saleId, address string) (participant *model.Participant, err error) {
	participant = new(model.Participant)
	err = self.DB.WithContext(ctx).
		First(participant, "sale_id = ? AND address = ?", saleId, address).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *Store) LockParticipant(ctx context.Context, saleId, address string) (participant *model.Participant, err error) {
	participant = new(model.Participant)
	err = self.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(participant, "sale_id = ? AND address = ?", saleId, address).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *Store) SaveParticipant(ctx context.Context, participant *model.Participant) error {
	return self.DB.WithContext(ctx).Save(participant).Error
}

func (self *Store) AppendContribution(ctx context.Context, contribution *model.Contribution) error {
	return self.DB.WithContext(ctx).Create(contribution).Error
}

func (self *Store) ListContributions(ctx context.Context, saleId, contributor string, limit int) (out []*model.Contribution, err error) {
	query := self.DB.WithContext(ctx).
		Table(model.TableContribution).
		Where("sale_id = ?", saleId).
		Order("timestamp ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if contributor != "" {
		query = query.Where("contributor = ?", contributor)
	}

	err = query.Find(&out).Error
	return
}

func (self *Store) GetAccount(ctx context.Context, address string) (account *model.TreasuryAccount, err error) {
	account = new(model.TreasuryAccount)
	err = self.DB.WithContext(ctx).First(account, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *Store) LockAccount(ctx context.Context, address string) (account *model.TreasuryAccount, err error) {
	account = new(model.TreasuryAccount)
	err = self.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(account, "address = ?", address).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *Store) SaveAccount(ctx context.Context, account *model.TreasuryAccount) error {
	return self.DB.WithContext(ctx).Save(account).Error
}
