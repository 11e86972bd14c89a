package services

import (
	"context"

	"github.com/dmitrijs2005/landgrab/internal/client/chain"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/dmitrijs2005/landgrab/internal/logging"
)

// AccountService reads and deletes the connected user's registry record.
type AccountService interface {
	Whoami(ctx context.Context) (models.User, error)
	Delete(ctx context.Context) (models.TxHash, error)
}

type accountService struct {
	reader chain.Reader
	writer chain.Writer
	wallet Wallet
	log    logging.Logger
}

func NewAccountService(reader chain.Reader, writer chain.Writer, wallet Wallet, log logging.Logger) AccountService {
	if log == nil {
		log = logging.Nop()
	}
	return &accountService{reader: reader, writer: writer, wallet: wallet, log: log.With("component", "account")}
}

// Whoami returns the registry record of the connected address. The Address
// field is filled in even for addresses that never registered.
func (a *accountService) Whoami(ctx context.Context) (models.User, error) {
	addr, err := a.wallet.Address()
	if err != nil {
		return models.User{}, err
	}
	user, err := a.reader.GetUser(ctx, addr)
	if err != nil {
		return models.User{}, err
	}
	user.Address = addr
	return user, nil
}

// Delete deactivates the connected user. An inactive user gets
// common.ErrAlreadyDeleted without a transaction.
func (a *accountService) Delete(ctx context.Context) (models.TxHash, error) {
	user, err := a.Whoami(ctx)
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", common.ErrAlreadyDeleted
	}
	hash, err := a.writer.DeleteUser(ctx)
	if err != nil {
		return "", err
	}
	a.log.Info(ctx, "account deleted", "address", user.Address.Hex(), "tx", hash)
	return hash, nil
}
