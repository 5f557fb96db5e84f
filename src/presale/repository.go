package presale

import (
	"context"

	"github.com/sealstudios/presale/src/utils/model"
)

// Repository is the transactional boundary of the ledger. Every capacity
// check reads freshly-locked totals and commits the update inside the same
// InTransaction invocation, there is no check-then-later-write.
type Repository interface {
	// InTransaction runs fn against a repository view whose writes either
	// all apply or all roll back. Reads of the sale and participant rows
	// inside fn are isolated from concurrent invocations touching the
	// same rows.
	InTransaction(ctx context.Context, fn func(tx Repository) error) error

	CreateSale(ctx context.Context, sale *model.Sale) error
	GetSale(ctx context.Context, id string) (*model.Sale, error)
	// LockSale reads the sale row and holds it against concurrent writers
	// until the surrounding transaction ends
	LockSale(ctx context.Context, id string) (*model.Sale, error)
	SaveSale(ctx context.Context, sale *model.Sale) error

	GetParticipant(ctx context.Context, saleId, address string) (*model.Participant, error)
	// LockParticipant works like LockSale, returns nil when the
	// participant has not contributed yet
	LockParticipant(ctx context.Context, saleId, address string) (*model.Participant, error)
	SaveParticipant(ctx context.Context, participant *model.Participant) error

	AppendContribution(ctx context.Context, contribution *model.Contribution) error
	ListContributions(ctx context.Context, saleId, contributor string, limit int) ([]*model.Contribution, error)

	// Treasury balance rows backing the database transfer boundary
	GetAccount(ctx context.Context, address string) (*model.TreasuryAccount, error)
	LockAccount(ctx context.Context, address string) (*model.TreasuryAccount, error)
	SaveAccount(ctx context.Context, account *model.TreasuryAccount) error
}
