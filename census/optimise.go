package census

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OptimiseOption configures Optimise.
type OptimiseOption func(*optimiseConfig)

type optimiseConfig struct {
	logger *zap.Logger
}

// WithLogger sets the logger for progress records.
func WithLogger(l *zap.Logger) OptimiseOption {
	return func(c *optimiseConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Optimise copies the database at src to dst with entries sorted by
// signature, keeping insertion order among equal signatures. Any existing
// dst is removed first. The copy is built under a temporary name beside
// dst and renamed into place; on failure no dst is left behind.
func Optimise(ctx context.Context, src, dst string, opts ...OptimiseOption) (err error) {
	cfg := optimiseConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if src == dst {
		return censusErrorf("Optimise", ErrInvalidArgument, "source and destination are both %s", src)
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return censusErrorf("Optimise", ErrFile, "%v", err)
	}
	in, err := OpenSQLite(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := filepath.Join(filepath.Dir(dst), ".census-"+uuid.NewString()+".tmp")
	defer func() {
		if err != nil {
			os.Remove(tmp)
			os.Remove(dst)
		}
	}()
	out, err := CreateSQLite(ctx, tmp)
	if err != nil {
		return err
	}
	rows, err := in.db.QueryContext(ctx, `SELECT sig, name, blob FROM census ORDER BY sig, id`)
	if err != nil {
		out.Abort()
		return censusErrorf("Optimise", ErrFile, "%s: %v", src, err)
	}
	entries, err := scanEntries(rows, src)
	if err != nil {
		out.Abort()
		return err
	}
	for _, e := range entries {
		if err = out.Add(ctx, e); err != nil {
			out.Abort()
			return err
		}
	}
	if err = out.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp, dst); err != nil {
		return censusErrorf("Optimise", ErrFile, "%v", err)
	}
	cfg.logger.Debug("census optimised",
		zap.String("src", src), zap.String("dst", dst), zap.Int("entries", len(entries)))
	return nil
}
