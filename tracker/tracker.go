// Package tracker owns the lifecycle of submitted transactions:
// pending -> confirming -> success/failed, persisted durably so the view
// survives a restart. Settlement data arrives two ways: an active wait on a
// just-submitted hash, and a passive reconciliation pass over everything
// persisted that still lacks terminal data.
package tracker

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// ChainProvider is the slice of chain RPC the tracker consumes. All calls
// may fail transiently.
type ChainProvider interface {
	// WaitMined blocks until a receipt exists for the hash or ctx ends.
	WaitMined(ctx context.Context, txHash string) (*types.Receipt, error)
	// TransactionReceipt returns the receipt or an error when none exists yet.
	TransactionReceipt(txHash string) (*types.Receipt, error)
	HeaderByNumber(number int64) (*types.Header, error)
}

type Tracker struct {
	provider ChainProvider
	history  *History
	logger   *zap.Logger

	// OnSuccess is invoked after a watched transaction settles successfully,
	// letting the surrounding system invalidate read caches for the account.
	OnSuccess func(chainID int64, account string)

	// now is swappable for tests
	now func() time.Time
}

func New(provider ChainProvider, history *History, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		provider: provider,
		history:  history,
		logger:   logger,
		now:      time.Now,
	}
}

func (t *Tracker) List(chainID int64, account string) []TrackedTransaction {
	return t.history.List(chainID, account)
}

// Track records a freshly submitted transaction as pending. Tracking the
// same hash again updates the existing entry instead of duplicating it.
func (t *Tracker) Track(chainID int64, account string, item TrackedTransaction) {
	if item.Status == "" {
		item.Status = StatusPending
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = t.now().UnixMilli()
	}
	t.history.Upsert(chainID, account, item)
}

// Watch is the active wait for one just-submitted hash: mark it confirming,
// block until at least one confirmation, pull the containing block for its
// timestamp and write the terminal result. Watch waits indefinitely; the
// only way out without a receipt is ctx cancellation, which leaves the entry
// in confirming for a later reconciliation pass to finish.
func (t *Tracker) Watch(ctx context.Context, chainID int64, account string, txHash string) (TrackedTransaction, error) {
	t.history.Upsert(chainID, account, TrackedTransaction{
		Hash:   txHash,
		Status: StatusConfirming,
	})

	receipt, err := t.provider.WaitMined(ctx, txHash)
	if err != nil {
		return TrackedTransaction{}, err
	}

	updated := t.applyReceipt(chainID, account, txHash, receipt)
	t.logger.Info("transaction settled",
		zap.String("hash", txHash),
		zap.String("status", string(updated.Status)),
		zap.Uint64("block", updated.BlockNumber),
		zap.Int64("chain_id", chainID))

	if updated.Status == StatusSuccess && t.OnSuccess != nil {
		t.OnSuccess(chainID, account)
	}
	return updated, nil
}

// ReconcileAll re-scans persisted entries for the pair and tries to settle
// any that still lack terminal data. A receipt that isn't available yet
// leaves its entry unchanged for the next pass, and one failed lookup never
// stops the rest of the batch. Returns how many entries were updated.
func (t *Tracker) ReconcileAll(chainID int64, account string) int {
	updated := 0
	for _, item := range t.history.List(chainID, account) {
		if item.HasTerminalData() {
			continue
		}

		receipt, err := t.provider.TransactionReceipt(item.Hash)
		if err != nil || receipt == nil {
			// transient: retried on the next reconciliation pass
			continue
		}

		t.applyReceipt(chainID, account, item.Hash, receipt)
		updated++
	}
	if updated > 0 {
		t.logger.Info("reconciled tx history",
			zap.Int64("chain_id", chainID),
			zap.Int("updated", updated))
	}
	return updated
}

func (t *Tracker) applyReceipt(chainID int64, account string, txHash string, receipt *types.Receipt) TrackedTransaction {
	status := StatusFailed
	if receipt.Status == types.ReceiptStatusSuccessful {
		status = StatusSuccess
	}

	item := TrackedTransaction{
		Hash:    txHash,
		Status:  status,
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		item.BlockNumber = receipt.BlockNumber.Uint64()
		header, err := t.provider.HeaderByNumber(receipt.BlockNumber.Int64())
		if err != nil {
			// block metadata is nice-to-have; the terminal status is not
			t.logger.Warn("couldn't fetch block for timestamp",
				zap.String("hash", txHash), zap.Error(err))
		} else {
			item.BlockTimestamp = int64(header.Time) * 1000
		}
	}

	t.history.Upsert(chainID, account, item)

	for _, cur := range t.history.List(chainID, account) {
		if cur.Hash == txHash {
			return cur
		}
	}
	return item
}
