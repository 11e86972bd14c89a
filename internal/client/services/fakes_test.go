package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// callLog records calls across fakes in the order they happen.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeLocator struct {
	pos models.Coordinates
	err error
}

func (f fakeLocator) Locate(context.Context) (models.Coordinates, error) {
	return f.pos, f.err
}

type fakeGeocoder struct {
	log      *callLog
	words    models.WordAddress
	wordsErr error
	coordErr error
}

func (f *fakeGeocoder) PositionToWords(_ context.Context, pos models.Coordinates) (models.WordAddress, error) {
	f.log.add("PositionToWords(%v,%v)", pos.Lat, pos.Lng)
	return f.words, f.wordsErr
}

func (f *fakeGeocoder) WordsToCoordinates(_ context.Context, w models.WordAddress) (models.Coordinates, error) {
	f.log.add("WordsToCoordinates(%s)", w)
	if f.coordErr != nil {
		return models.Coordinates{}, f.coordErr
	}
	return models.Coordinates{Lat: 51.5, Lng: -0.12}, nil
}

type fakeReader struct {
	log        *callLog
	user       models.User
	userErr    error
	parcels    []models.WordAddress
	details    map[models.WordAddress]models.LandParcel
	detailErr  error
	nameOwners map[string]ethcommon.Address
}

func (f *fakeReader) GetUser(_ context.Context, addr ethcommon.Address) (models.User, error) {
	f.log.add("GetUser(%s)", addr.Hex())
	return f.user, f.userErr
}

func (f *fakeReader) ListUserParcels(_ context.Context, owner ethcommon.Address) ([]models.WordAddress, error) {
	f.log.add("ListUserParcels(%s)", owner.Hex())
	return f.parcels, nil
}

func (f *fakeReader) GetParcelDetails(_ context.Context, w models.WordAddress) (models.LandParcel, error) {
	f.log.add("GetParcelDetails(%s)", w)
	if f.detailErr != nil {
		return models.LandParcel{}, f.detailErr
	}
	if p, ok := f.details[w]; ok {
		return p, nil
	}
	return models.LandParcel{}, common.ErrNotFound
}

func (f *fakeReader) UsernameOwner(_ context.Context, name string) (ethcommon.Address, error) {
	f.log.add("UsernameOwner(%s)", name)
	return f.nameOwners[name], nil
}

type fakeWriter struct {
	log *callLog
	err map[string]error
}

func (f *fakeWriter) result(method string) (models.TxHash, error) {
	if err := f.err[method]; err != nil {
		return "", err
	}
	return models.TxHash("0x" + method), nil
}

func (f *fakeWriter) RegisterUser(_ context.Context, username string) (models.TxHash, error) {
	f.log.add("RegisterUser(%s)", username)
	return f.result("registerUser")
}

func (f *fakeWriter) DeleteUser(context.Context) (models.TxHash, error) {
	f.log.add("DeleteUser()")
	return f.result("deleteUser")
}

func (f *fakeWriter) ClaimParcel(_ context.Context, w models.WordAddress) (models.TxHash, error) {
	f.log.add("ClaimParcel(%s)", w)
	return f.result("claimLand")
}

func (f *fakeWriter) ProposeSwap(_ context.Context, mine, theirs models.WordAddress) (models.TxHash, error) {
	f.log.add("ProposeSwap(%s,%s)", mine, theirs)
	return f.result("proposeSwap")
}

func (f *fakeWriter) ApproveSwap(_ context.Context, proposer ethcommon.Address) (models.TxHash, error) {
	f.log.add("ApproveSwap(%s)", proposer.Hex())
	return f.result("approveSwap")
}

type fakeWallet struct {
	addr ethcommon.Address
	err  error
}

func (f fakeWallet) Address() (ethcommon.Address, error) {
	return f.addr, f.err
}

type fakeNames struct {
	name string
	err  error
}

func (f fakeNames) Username(context.Context, ethcommon.Address) (string, error) { return f.name, f.err }
func (f fakeNames) Set(context.Context, string) error                          { return nil }
func (f fakeNames) Preferred(context.Context) (string, error)                   { return f.name, nil }

// memPrefs is an in-memory metadata.Repository.
type memPrefs struct {
	m map[string][]byte
}

func newMemPrefs() *memPrefs { return &memPrefs{m: map[string][]byte{}} }

func (p *memPrefs) Get(_ context.Context, key string) ([]byte, error) { return p.m[key], nil }
func (p *memPrefs) Set(_ context.Context, key string, v []byte) error {
	p.m[key] = v
	return nil
}
func (p *memPrefs) Clear(context.Context) error {
	p.m = map[string][]byte{}
	return nil
}

// memJournal is an in-memory journal.Repository.
type memJournal struct {
	recs   []models.TxRecord
	addErr error
}

func (j *memJournal) Add(_ context.Context, rec models.TxRecord) error {
	if j.addErr != nil {
		return j.addErr
	}
	j.recs = append(j.recs, rec)
	return nil
}

func (j *memJournal) List(_ context.Context, limit int) ([]models.TxRecord, error) {
	out := make([]models.TxRecord, 0, len(j.recs))
	for i := len(j.recs) - 1; i >= 0; i-- {
		out = append(out, j.recs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (j *memJournal) Clear(context.Context) error {
	j.recs = nil
	return nil
}

var (
	userAddr     = ethcommon.HexToAddress("0x1111111111111111111111111111111111111111")
	proposerAddr = ethcommon.HexToAddress("0xabc0000000000000000000000000000000000abc")
)
