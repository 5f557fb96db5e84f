package presale

import (
	"context"
	"time"

	"github.com/sealstudios/presale/src/utils/model"
)

// TransferBoundary moves currency and token units once the ledger has
// approved a contribution. Both calls are all-or-nothing, an error aborts
// the surrounding ledger transaction and no totals are committed.
//
// The repo argument is the transaction the ledger is running in, so that
// a ledger-internal implementation settles atomically with the totals.
// Implementations that settle somewhere external ignore it.
type TransferBoundary interface {
	// TokenBalance reports how many tokens the pool can still pay out
	TokenBalance(ctx context.Context, repo Repository, pool string) (uint64, error)

	// TransferTokens moves tokens from the pool to the contributor
	TransferTokens(ctx context.Context, repo Repository, pool, to string, amount uint64) error

	// MoveCurrency debits the contributor and credits the treasury
	MoveCurrency(ctx context.Context, repo Repository, from, to string, amount uint64) error
}

// Treasury is the database-backed transfer boundary. Balances live in
// treasury account rows updated inside the ledger transaction.
type Treasury struct{}

func NewTreasury() *Treasury {
	return new(Treasury)
}

func (self *Treasury) TokenBalance(ctx context.Context, repo Repository, pool string) (balance uint64, err error) {
	account, err := repo.LockAccount(ctx, pool)
	if err != nil {
		return
	}
	if account == nil {
		return 0, nil
	}
	return account.TokenBalance, nil
}

func (self *Treasury) TransferTokens(ctx context.Context, repo Repository, pool, to string, amount uint64) (err error) {
	from, err := repo.LockAccount(ctx, pool)
	if err != nil {
		return
	}
	if from == nil || from.TokenBalance < amount {
		return ErrInsufficientTreasury
	}

	recipient, err := repo.LockAccount(ctx, to)
	if err != nil {
		return
	}
	if recipient == nil {
		recipient = &model.TreasuryAccount{Address: to}
	}

	recipientBalance, err := checkedAdd(recipient.TokenBalance, amount)
	if err != nil {
		return
	}

	now := time.Now().Unix()
	from.TokenBalance -= amount
	from.UpdatedAt = now
	recipient.TokenBalance = recipientBalance
	recipient.UpdatedAt = now

	err = repo.SaveAccount(ctx, from)
	if err != nil {
		return
	}
	return repo.SaveAccount(ctx, recipient)
}

func (self *Treasury) MoveCurrency(ctx context.Context, repo Repository, from, to string, amount uint64) (err error) {
	payer, err := repo.LockAccount(ctx, from)
	if err != nil {
		return
	}
	if payer == nil || payer.CurrencyBalance < amount {
		return ErrInsufficientTreasury
	}

	receiver, err := repo.LockAccount(ctx, to)
	if err != nil {
		return
	}
	if receiver == nil {
		receiver = &model.TreasuryAccount{Address: to}
	}

	receiverBalance, err := checkedAdd(receiver.CurrencyBalance, amount)
	if err != nil {
		return
	}

	now := time.Now().Unix()
	payer.CurrencyBalance -= amount
	payer.UpdatedAt = now
	receiver.CurrencyBalance = receiverBalance
	receiver.UpdatedAt = now

	err = repo.SaveAccount(ctx, payer)
	if err != nil {
		return
	}
	return repo.SaveAccount(ctx, receiver)
}
