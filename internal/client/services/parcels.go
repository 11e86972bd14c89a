package services

import (
	"context"

	"github.com/dmitrijs2005/landgrab/internal/client/chain"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// DefaultDetailConcurrency bounds parallel getLandDetails calls.
const DefaultDetailConcurrency = 8

// ParcelService lists owned parcels with their registry details.
type ParcelService interface {
	List(ctx context.Context, owner ethcommon.Address) ([]models.LandParcel, error)
	ListMine(ctx context.Context) ([]models.LandParcel, error)
}

type parcelService struct {
	reader chain.Reader
	wallet Wallet
	limit  int
}

func NewParcelService(reader chain.Reader, wallet Wallet, concurrency int) ParcelService {
	if concurrency <= 0 {
		concurrency = DefaultDetailConcurrency
	}
	return &parcelService{reader: reader, wallet: wallet, limit: concurrency}
}

func (p *parcelService) ListMine(ctx context.Context) ([]models.LandParcel, error) {
	addr, err := p.wallet.Address()
	if err != nil {
		return nil, err
	}
	return p.List(ctx, addr)
}

// List fetches the owner's word-addresses, then their details concurrently.
// The result keeps registry order. No details are requested when the owner
// has no parcels.
func (p *parcelService) List(ctx context.Context, owner ethcommon.Address) ([]models.LandParcel, error) {
	words, err := p.reader.ListUserParcels(ctx, owner)
	if err != nil {
		return nil, err
	}
	parcels := make([]models.LandParcel, len(words))
	if len(words) == 0 {
		return parcels, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for i, w := range words {
		g.Go(func() error {
			parcel, err := p.reader.GetParcelDetails(gctx, w)
			if err != nil {
				return err
			}
			parcels[i] = parcel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parcels, nil
}
