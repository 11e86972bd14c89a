package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/landgrab/internal/client/config"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/client/services"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/dmitrijs2005/landgrab/internal/logging"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

var testAddr = ethcommon.HexToAddress("0x1111111111111111111111111111111111111111")

type fakeWallet struct {
	connected bool
	hexKey    string
	keyJSON   []byte
	password  string
	err       error
}

func (w *fakeWallet) ConnectHex(k string) error {
	if w.err != nil {
		return w.err
	}
	w.hexKey, w.connected = k, true
	return nil
}

func (w *fakeWallet) ConnectKeystore(j []byte, pw string) error {
	if w.err != nil {
		return w.err
	}
	w.keyJSON, w.password, w.connected = j, pw, true
	return nil
}

func (w *fakeWallet) Disconnect()     { w.connected = false }
func (w *fakeWallet) Connected() bool { return w.connected }
func (w *fakeWallet) Address() (ethcommon.Address, error) {
	if !w.connected {
		return ethcommon.Address{}, common.ErrWalletNotConnected
	}
	return testAddr, nil
}

type fakeClaims struct {
	snap      services.Snapshot
	calls     []string
	claimErr  error
	setErr    error
	locateRes models.WordAddress
}

func (f *fakeClaims) Locate(context.Context) (models.WordAddress, error) {
	f.calls = append(f.calls, "Locate")
	f.snap.Words = f.locateRes
	return f.locateRes, nil
}

func (f *fakeClaims) Claim(context.Context) (models.TxHash, error) {
	f.calls = append(f.calls, "Claim("+string(f.snap.Words)+")")
	if f.claimErr != nil {
		f.snap.LastError = f.claimErr.Error()
		return "", f.claimErr
	}
	f.snap.Words = ""
	return "0xfeed", nil
}

func (f *fakeClaims) ClaimHere(context.Context) (models.TxHash, error) {
	f.calls = append(f.calls, "ClaimHere")
	return "0xbeef", f.claimErr
}

func (f *fakeClaims) SetWords(w string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.snap.Words = models.ParseWordAddress(w)
	return nil
}

func (f *fakeClaims) Snapshot() services.Snapshot { return f.snap }

type fakeSwaps struct {
	form     services.SwapForm
	proposed [][2]string
	approved []string
	err      error
}

func (f *fakeSwaps) Open(context.Context) (services.SwapForm, error) { return f.form, nil }

func (f *fakeSwaps) Propose(_ context.Context, mine, theirs string) (models.TxHash, error) {
	f.proposed = append(f.proposed, [2]string{mine, theirs})
	return "0xswap", f.err
}

func (f *fakeSwaps) Approve(_ context.Context, proposer string) (models.TxHash, error) {
	f.approved = append(f.approved, proposer)
	if f.err != nil {
		return "", f.err
	}
	return "0xapprove", nil
}

type fakeParcels struct {
	parcels []models.LandParcel
	err     error
}

func (f *fakeParcels) List(context.Context, ethcommon.Address) ([]models.LandParcel, error) {
	return f.parcels, f.err
}

func (f *fakeParcels) ListMine(ctx context.Context) ([]models.LandParcel, error) {
	return f.List(ctx, testAddr)
}

type fakeAccount struct {
	user    models.User
	deleted int
	err     error
}

func (f *fakeAccount) Whoami(context.Context) (models.User, error) { return f.user, f.err }
func (f *fakeAccount) Delete(context.Context) (models.TxHash, error) {
	f.deleted++
	if f.err != nil {
		return "", f.err
	}
	return "0xdel", nil
}

type fakeNames struct{ name string }

func (f *fakeNames) Username(context.Context, ethcommon.Address) (string, error) { return f.name, nil }
func (f *fakeNames) Preferred(context.Context) (string, error)                   { return f.name, nil }
func (f *fakeNames) Set(_ context.Context, n string) error {
	f.name = strings.TrimSpace(n)
	return nil
}

type fakeHistory struct {
	recs   []models.TxRecord
	resets int
}

func (f *fakeHistory) List(context.Context, int) ([]models.TxRecord, error) { return f.recs, nil }
func (f *fakeHistory) Reset(context.Context) error {
	f.resets++
	return nil
}

type fakePinger struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (p *fakePinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.err
}

func (p *fakePinger) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func (p *fakePinger) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type testApp struct {
	*App
	out     *bytes.Buffer
	wallet  *fakeWallet
	claims  *fakeClaims
	swaps   *fakeSwaps
	parcels *fakeParcels
	account *fakeAccount
	names   *fakeNames
	history *fakeHistory
	pinger  *fakePinger
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	ta := &testApp{
		out:     &bytes.Buffer{},
		wallet:  &fakeWallet{},
		claims:  &fakeClaims{},
		swaps:   &fakeSwaps{},
		parcels: &fakeParcels{},
		account: &fakeAccount{},
		names:   &fakeNames{},
		history: &fakeHistory{},
		pinger:  &fakePinger{},
	}
	ta.App = &App{
		config:  cfg,
		log:     logging.Nop(),
		wallet:  ta.wallet,
		claims:  ta.claims,
		swaps:   ta.swaps,
		parcels: ta.parcels,
		account: ta.account,
		names:   ta.names,
		history: ta.history,
		pinger:  ta.pinger,
		mode:    ModeOffline,
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     ta.out,
	}
	return ta
}

func stubPassword(t *testing.T, secret string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer, string) ([]byte, error) { return []byte(secret), nil }
	t.Cleanup(func() { getPassword = orig })
}
