package tracker_test

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pikchain/pikchain/store"
	"github.com/pikchain/pikchain/tracker"
)

type fakeProvider struct {
	mu           sync.Mutex
	receipts     map[string]*types.Receipt
	receiptCalls map[string]int
	headerTime   uint64
	headerErr    error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		receipts:     map[string]*types.Receipt{},
		receiptCalls: map[string]int{},
		headerTime:   1700000000,
	}
}

func (f *fakeProvider) addReceipt(hash string, status uint64, block int64, gasUsed uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts[hash] = &types.Receipt{
		Status:      status,
		BlockNumber: big.NewInt(block),
		GasUsed:     gasUsed,
	}
}

func (f *fakeProvider) TransactionReceipt(txHash string) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receiptCalls[txHash]++
	r, ok := f.receipts[txHash]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (f *fakeProvider) WaitMined(ctx context.Context, txHash string) (*types.Receipt, error) {
	f.mu.Lock()
	r, ok := f.receipts[txHash]
	f.mu.Unlock()
	if ok {
		return r, nil
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *fakeProvider) HeaderByNumber(number int64) (*types.Header, error) {
	if f.headerErr != nil {
		return nil, f.headerErr
	}
	return &types.Header{Number: big.NewInt(number), Time: f.headerTime}, nil
}

func newTracker(t *testing.T, provider *fakeProvider) *tracker.Tracker {
	t.Helper()
	return tracker.New(provider, tracker.NewHistory(store.NewMemStore(), nil), nil)
}

func TestTrackCreatesPendingEntry(t *testing.T) {
	tr := newTracker(t, newFakeProvider())

	tr.Track(chainID, account, tracker.TrackedTransaction{
		Hash: "0xdeadbeef", CID: "QmABC", Action: "addCID",
	})

	items := tr.List(chainID, account)
	require.Len(t, items, 1)
	assert.Equal(t, tracker.StatusPending, items[0].Status)
	assert.NotZero(t, items[0].CreatedAt)
	assert.Equal(t, "QmABC", items[0].CID)
}

func TestTrackTwiceSameHashSingleEntry(t *testing.T) {
	tr := newTracker(t, newFakeProvider())

	tr.Track(chainID, account, tracker.TrackedTransaction{Hash: "0xdeadbeef", CreatedAt: 1000})
	tr.Track(chainID, account, tracker.TrackedTransaction{Hash: "0xdeadbeef", Action: "addCID"})

	items := tr.List(chainID, account)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1000), items[0].CreatedAt)
	assert.Equal(t, "addCID", items[0].Action)
}

func TestWatchSuccessfulReceipt(t *testing.T) {
	provider := newFakeProvider()
	provider.addReceipt("0xdeadbeef", types.ReceiptStatusSuccessful, 42, 21000)
	tr := newTracker(t, provider)

	var invalidated []string
	tr.OnSuccess = func(cid int64, acc string) {
		invalidated = append(invalidated, fmt.Sprintf("%d/%s", cid, acc))
	}

	tr.Track(chainID, account, tracker.TrackedTransaction{Hash: "0xdeadbeef", CreatedAt: 1000})
	settled, err := tr.Watch(context.Background(), chainID, account, "0xdeadbeef")
	require.NoError(t, err)

	assert.Equal(t, tracker.StatusSuccess, settled.Status)
	assert.Equal(t, uint64(42), settled.BlockNumber)
	assert.Equal(t, uint64(21000), settled.GasUsed)
	assert.Equal(t, int64(1700000000)*1000, settled.BlockTimestamp)
	assert.Equal(t, int64(1000), settled.CreatedAt)

	require.Len(t, invalidated, 1)
	assert.Equal(t, "80002/"+account, invalidated[0])
}

func TestWatchFailedReceipt(t *testing.T) {
	provider := newFakeProvider()
	provider.addReceipt("0xbad", types.ReceiptStatusFailed, 43, 30000)
	tr := newTracker(t, provider)

	called := false
	tr.OnSuccess = func(int64, string) { called = true }

	tr.Track(chainID, account, tracker.TrackedTransaction{Hash: "0xbad"})
	settled, err := tr.Watch(context.Background(), chainID, account, "0xbad")
	require.NoError(t, err)

	assert.Equal(t, tracker.StatusFailed, settled.Status)
	assert.False(t, called, "failed settlement must not invalidate caches")
}

func TestWatchCancelledLeavesConfirming(t *testing.T) {
	tr := newTracker(t, newFakeProvider())

	tr.Track(chainID, account, tracker.TrackedTransaction{Hash: "0xslow"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.Watch(ctx, chainID, account, "0xslow")
	assert.ErrorIs(t, err, context.Canceled)

	items := tr.List(chainID, account)
	require.Len(t, items, 1)
	assert.Equal(t, tracker.StatusConfirming, items[0].Status,
		"a torn-down watch leaves the entry for reconciliation")
}

func TestWatchToleratesHeaderFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.addReceipt("0xdeadbeef", types.ReceiptStatusSuccessful, 42, 21000)
	provider.headerErr = fmt.Errorf("header lookup down")
	tr := newTracker(t, provider)

	settled, err := tr.Watch(context.Background(), chainID, account, "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, tracker.StatusSuccess, settled.Status)
	assert.Equal(t, uint64(42), settled.BlockNumber)
	assert.Zero(t, settled.BlockTimestamp)
}

func TestReconcileAll(t *testing.T) {
	provider := newFakeProvider()
	tr := newTracker(t, provider)

	// settled long ago, carries full terminal data: must be skipped
	tr.Track(chainID, account, tracker.TrackedTransaction{
		Hash: "0xdone", CreatedAt: 500, Status: tracker.StatusSuccess,
		BlockNumber: 10, BlockTimestamp: 1690000000000,
	})
	// pending with a receipt now available
	tr.Track(chainID, account, tracker.TrackedTransaction{Hash: "0xdeadbeef", CreatedAt: 1000})
	provider.addReceipt("0xdeadbeef", types.ReceiptStatusSuccessful, 42, 21000)
	// pending, still no receipt anywhere
	tr.Track(chainID, account, tracker.TrackedTransaction{Hash: "0xwaiting", CreatedAt: 2000})

	updated := tr.ReconcileAll(chainID, account)
	assert.Equal(t, 1, updated)

	byHash := map[string]tracker.TrackedTransaction{}
	for _, item := range tr.List(chainID, account) {
		byHash[item.Hash] = item
	}

	assert.Equal(t, tracker.StatusSuccess, byHash["0xdeadbeef"].Status)
	assert.Equal(t, uint64(42), byHash["0xdeadbeef"].BlockNumber)
	assert.Equal(t, int64(1000), byHash["0xdeadbeef"].CreatedAt, "reconcile must preserve CreatedAt")

	assert.Equal(t, tracker.StatusPending, byHash["0xwaiting"].Status, "missing receipt leaves entry unchanged")
	assert.Equal(t, 0, provider.receiptCalls["0xdone"], "entries with terminal data are not re-looked-up")
}

func TestSettlementPreservesEntryMetadata(t *testing.T) {
	provider := newFakeProvider()
	tr := newTracker(t, provider)

	tr.Track(chainID, account, tracker.TrackedTransaction{
		Hash: "0xdeadbeef", CID: "QmABC", ContractAddress: "0xc0ffee", Action: "addCID",
	})
	provider.addReceipt("0xdeadbeef", types.ReceiptStatusSuccessful, 42, 21000)

	updated := tr.ReconcileAll(chainID, account)
	require.Equal(t, 1, updated)

	items := tr.List(chainID, account)
	require.Len(t, items, 1)
	assert.Equal(t, tracker.StatusSuccess, items[0].Status)
	assert.Equal(t, "QmABC", items[0].CID, "settlement mutates the entry, it must not rebuild it")
	assert.Equal(t, "0xc0ffee", items[0].ContractAddress)
	assert.Equal(t, "addCID", items[0].Action)
}

func TestWatchPreservesEntryMetadata(t *testing.T) {
	provider := newFakeProvider()
	provider.addReceipt("0xdeadbeef", types.ReceiptStatusSuccessful, 42, 21000)
	tr := newTracker(t, provider)

	tr.Track(chainID, account, tracker.TrackedTransaction{
		Hash: "0xdeadbeef", CID: "QmABC", Action: "addCID",
	})
	settled, err := tr.Watch(context.Background(), chainID, account, "0xdeadbeef")
	require.NoError(t, err)

	assert.Equal(t, "QmABC", settled.CID)
	assert.Equal(t, "addCID", settled.Action)
	assert.Equal(t, uint64(42), settled.BlockNumber)
}

func TestReconcileToleratesPartialFailure(t *testing.T) {
	provider := newFakeProvider()
	tr := newTracker(t, provider)

	tr.Track(chainID, account, tracker.TrackedTransaction{Hash: "0xfirst", CreatedAt: 1})
	tr.Track(chainID, account, tracker.TrackedTransaction{Hash: "0xsecond", CreatedAt: 2})
	// only the second has a receipt; the first lookup fails
	provider.addReceipt("0xsecond", types.ReceiptStatusSuccessful, 50, 21000)

	updated := tr.ReconcileAll(chainID, account)
	assert.Equal(t, 1, updated)

	byHash := map[string]tracker.TrackedTransaction{}
	for _, item := range tr.List(chainID, account) {
		byHash[item.Hash] = item
	}
	assert.Equal(t, tracker.StatusSuccess, byHash["0xsecond"].Status)
	assert.Equal(t, tracker.StatusPending, byHash["0xfirst"].Status)
}
