package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Exporter persists gallery content to local files, one resolver fetch per
// cid. Items are processed strictly in sequence with a small pause between
// them so we don't hammer whichever gateway is currently healthy.
type Exporter struct {
	resolver *Resolver
	destDir  string
	logger   *zap.Logger

	// PauseBetween is the delay inserted between consecutive downloads.
	PauseBetween time.Duration
}

type ExportResult struct {
	CID  string
	Path string
	Err  error
}

func NewExporter(resolver *Resolver, destDir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		resolver:     resolver,
		destDir:      destDir,
		logger:       logger,
		PauseBetween: 500 * time.Millisecond,
	}
}

// Download fetches one cid and writes it under the destination directory,
// named after the cid with an extension derived from the declared content
// type.
func (e *Exporter) Download(ctx context.Context, cidStr string) (string, error) {
	body, contentType, err := e.resolver.FetchContent(ctx, cidStr)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.destDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(e.destDir, fmt.Sprintf("pikchain-%s.%s", shortCID(strings.TrimSpace(cidStr)), extFromContentType(contentType)))
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", err
	}

	e.logger.Info("download saved", zap.String("cid", cidStr), zap.String("path", path))
	return path, nil
}

// DownloadAll exports every cid in order. A failed item is logged and
// recorded in its result but never aborts the rest of the batch; only
// context cancellation stops the loop early.
func (e *Exporter) DownloadAll(ctx context.Context, cids []string) []ExportResult {
	results := make([]ExportResult, 0, len(cids))
	for i, cidStr := range cids {
		if ctx.Err() != nil {
			break
		}
		path, err := e.Download(ctx, cidStr)
		if err != nil {
			e.logger.Error("bulk download item failed", zap.String("cid", cidStr), zap.Error(err))
		}
		results = append(results, ExportResult{CID: cidStr, Path: path, Err: err})

		if e.PauseBetween > 0 && i < len(cids)-1 {
			select {
			case <-time.After(e.PauseBetween):
			case <-ctx.Done():
			}
		}
	}
	return results
}

func extFromContentType(contentType string) string {
	// "image/jpeg; charset=..." -> "jpeg"
	parts := strings.SplitN(contentType, "/", 2)
	if len(parts) != 2 {
		return "bin"
	}
	sub := strings.SplitN(parts[1], ";", 2)[0]
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return "bin"
	}
	return sub
}
