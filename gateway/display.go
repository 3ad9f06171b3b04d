package gateway

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// How long the display waits on one gateway before pointing the viewer at
// the next one.
const DISPLAY_ADVANCE_TIMEOUT time.Duration = 3 * time.Second

// Display is the interactive presentation side of gateway fallback: an index
// into the gateway list that advances either when a timer fires or when the
// viewer reports a load error, whichever happens first. Advancing does not
// cancel the previous source's in-flight load; a slow gateway that
// eventually delivers still wins by calling MarkLoaded, after which every
// further signal is a no-op.
type Display struct {
	mu       sync.Mutex
	gateways []string
	cid      string
	logger   *zap.Logger

	index   int
	loaded  bool
	stopped bool
	timer   *time.Timer

	// AdvanceAfter is the per-source display timeout.
	AdvanceAfter time.Duration
	// OnChange, when set, is invoked with the new source URL after every
	// index advance. Invoked outside the lock.
	OnChange func(index int, url string)
}

func NewDisplay(gateways []string, cidStr string, logger *zap.Logger) *Display {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Display{
		gateways:     append([]string{}, gateways...),
		cid:          strings.TrimSpace(cidStr),
		logger:       logger,
		AdvanceAfter: DISPLAY_ADVANCE_TIMEOUT,
	}
}

// Start arms the timeout for the first source. The display shows a loading
// state until MarkLoaded.
func (d *Display) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.armTimerLocked()
}

func (d *Display) armTimerLocked() {
	if d.loaded || d.stopped || d.index >= len(d.gateways)-1 {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.AdvanceAfter, func() {
		d.advance("timeout")
	})
}

// Advance moves the display to the next gateway after a terminal load error.
func (d *Display) Advance() {
	d.advance("load error")
}

func (d *Display) advance(reason string) {
	d.mu.Lock()
	if d.loaded || d.stopped || d.index >= len(d.gateways)-1 {
		d.mu.Unlock()
		return
	}
	d.index++
	index := d.index
	url := d.gateways[index] + d.cid
	d.logger.Warn("display advancing to next gateway",
		zap.String("cid", shortCID(d.cid)),
		zap.String("reason", reason),
		zap.Int("index", index))
	d.armTimerLocked()
	onChange := d.OnChange
	d.mu.Unlock()

	if onChange != nil {
		onChange(index, url)
	}
}

// MarkLoaded records that the current source finished loading. The pending
// timer is cleared and later Advance calls become no-ops.
func (d *Display) MarkLoaded() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaded = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop tears the display down without marking it loaded, e.g. when the
// owning view goes away.
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Display) CurrentIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

// CurrentURL returns the source the display currently points at, or an
// empty string when there are no gateways at all.
func (d *Display) CurrentURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.index >= len(d.gateways) {
		return ""
	}
	return d.gateways[d.index] + d.cid
}

func (d *Display) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded
}

func shortCID(cidStr string) string {
	if len(cidStr) <= 8 {
		return cidStr
	}
	return cidStr[:8]
}
