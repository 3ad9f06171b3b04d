package tracker

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pikchain/pikchain/store"
)

// HISTORY_CAP bounds the persisted list per (chain, account); the oldest
// entries beyond it are dropped.
const HISTORY_CAP = 200

func historyKey(chainID int64, account string) string {
	return fmt.Sprintf("pikchain_txs_%d_%s", chainID, strings.ToLower(account))
}

// History persists the per-(chain, account) transaction list in the durable
// store, newest first, at most one entry per hash. Store failures are logged
// and swallowed: losing history must never fail the write that produced it.
type History struct {
	store  store.Store
	logger *zap.Logger
}

func NewHistory(s store.Store, logger *zap.Logger) *History {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &History{store: s, logger: logger}
}

// List returns the ordered list for the pair, newest CreatedAt first.
// Unreadable persisted state yields an empty list rather than an error.
func (h *History) List(chainID int64, account string) []TrackedTransaction {
	key := historyKey(chainID, account)
	raw, found := h.store.Get(key)
	if !found {
		return []TrackedTransaction{}
	}
	var items []TrackedTransaction
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		h.logger.Warn("tx history unreadable, starting over", zap.String("key", key), zap.Error(err))
		return []TrackedTransaction{}
	}

	valid := items[:0]
	for _, item := range items {
		if item.Hash != "" {
			valid = append(valid, item)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].CreatedAt > valid[j].CreatedAt
	})
	return valid
}

// Upsert inserts or updates the entry matching item.Hash. An update mutates
// the recorded entry: any field the caller left zero keeps its recorded
// value, CreatedAt stays put unless set explicitly, and the status never
// moves backward through the lifecycle. Settlement data can therefore be
// applied without re-stating what the entry already knows about itself.
func (h *History) Upsert(chainID int64, account string, item TrackedTransaction) {
	if item.Hash == "" {
		return
	}

	existing := h.List(chainID, account)
	rest := make([]TrackedTransaction, 0, len(existing))
	for _, t := range existing {
		if t.Hash == item.Hash {
			if item.CreatedAt == 0 {
				item.CreatedAt = t.CreatedAt
			}
			if item.Status.rank() < t.Status.rank() {
				item.Status = t.Status
			}
			if item.CID == "" {
				item.CID = t.CID
			}
			if item.ContractAddress == "" {
				item.ContractAddress = t.ContractAddress
			}
			if item.Action == "" {
				item.Action = t.Action
			}
			if item.BlockNumber == 0 {
				item.BlockNumber = t.BlockNumber
			}
			if item.GasUsed == 0 {
				item.GasUsed = t.GasUsed
			}
			if item.BlockTimestamp == 0 {
				item.BlockTimestamp = t.BlockTimestamp
			}
			continue
		}
		rest = append(rest, t)
	}

	next := append([]TrackedTransaction{item}, rest...)
	if len(next) > HISTORY_CAP {
		next = next[:HISTORY_CAP]
	}
	h.persist(chainID, account, next)
}

func (h *History) Remove(chainID int64, account string, hash string) {
	existing := h.List(chainID, account)
	next := make([]TrackedTransaction, 0, len(existing))
	for _, t := range existing {
		if t.Hash != hash {
			next = append(next, t)
		}
	}
	h.persist(chainID, account, next)
}

func (h *History) persist(chainID int64, account string, items []TrackedTransaction) {
	key := historyKey(chainID, account)
	data, err := json.Marshal(items)
	if err != nil {
		h.logger.Warn("tx history not serializable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := h.store.Set(key, string(data)); err != nil {
		h.logger.Warn("tx history write failed", zap.String("key", key), zap.Error(err))
	}
}
