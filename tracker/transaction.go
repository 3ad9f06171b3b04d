package tracker

type Status string

const (
	// StatusPending: entry created at submission time, nothing heard back.
	StatusPending Status = "pending"
	// StatusConfirming: a watcher is actively awaiting the receipt.
	StatusConfirming Status = "confirming"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// rank orders the state machine so persistence can refuse backward moves.
func (s Status) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusConfirming:
		return 1
	case StatusSuccess, StatusFailed:
		return 2
	}
	return 0
}

// TrackedTransaction is one submitted state-changing operation. Timestamps
// are unix milliseconds.
type TrackedTransaction struct {
	Hash            string `json:"hash"`
	CID             string `json:"cid,omitempty"`
	ContractAddress string `json:"contractAddress,omitempty"`
	Action          string `json:"action,omitempty"`
	CreatedAt       int64  `json:"createdAt"`
	Status          Status `json:"status"`
	BlockNumber     uint64 `json:"blockNumber,omitempty"`
	GasUsed         uint64 `json:"gasUsed,omitempty"`
	BlockTimestamp  int64  `json:"blockTimestamp,omitempty"`
}

// HasTerminalData reports whether the entry already carries everything a
// settled transaction gets: a terminal status plus block placement.
// Reconciliation skips such entries entirely.
func (t TrackedTransaction) HasTerminalData() bool {
	return t.Status.Terminal() && t.BlockNumber != 0 && t.BlockTimestamp != 0
}
