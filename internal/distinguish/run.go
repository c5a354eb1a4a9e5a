package distinguish

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultRMax is the largest Turaev–Viro parameter r used by default.
const DefaultRMax = 5

// Config controls Run.
type Config struct {
	RMax    int
	Workers int
	Logger  *zap.Logger
}

// DefaultConfig returns r ≤ DefaultRMax, one worker per CPU and a no-op
// logger.
func DefaultConfig() Config {
	return Config{RMax: DefaultRMax, Workers: runtime.GOMAXPROCS(0), Logger: zap.NewNop()}
}

func (c Config) validate() error {
	switch {
	case c.RMax < 2:
		return distinguishErrorf("Run", ErrInvalidArgument, "rmax %d, want at least 2", c.RMax)
	case c.Workers < 1:
		return distinguishErrorf("Run", ErrInvalidArgument, "workers %d, want at least 1", c.Workers)
	}
	return nil
}

// Run computes the invariants of every member and compares them. The
// first failing computation cancels the rest and is returned.
func Run(ctx context.Context, containers []Container, cfg Config) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	results := make([][]Invariants, len(containers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for ci := range containers {
		results[ci] = make([]Invariants, len(containers[ci].Members))
		for mi := range containers[ci].Members {
			m := &containers[ci].Members[mi]
			if m.Triangulation() == nil {
				return nil, distinguishErrorf("Run", ErrInvalidArgument, "%s member %s has no triangulation", containers[ci].Name, m.Name)
			}
			g.Go(func() error {
				inv, err := Compute(gctx, m.Triangulation(), cfg.RMax)
				if err != nil {
					return distinguishErrorf("Run", err, "%s member %s", containers[ci].Name, m.Name)
				}
				results[ci][mi] = inv
				log.Debug("invariants computed",
					zap.String("container", containers[ci].Name), zap.String("member", m.Name),
					zap.String("h1", inv.H1s), zap.Int("h2z2", inv.H2Z2))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{RunID: uuid.NewString(), RMax: cfg.RMax}
	for ci, c := range containers {
		rep.Triangulations += len(c.Members)
		summary := ContainerSummary{Name: c.Name, Consistent: true}
		for mi, m := range c.Members {
			summary.Members = append(summary.Members, MemberSummary{Name: m.Name, Invariants: results[ci][mi]})
			if !results[ci][mi].Equal(results[ci][0]) {
				summary.Consistent = false
			}
		}
		rep.Containers = append(rep.Containers, summary)
		if !summary.Consistent {
			rep.Disagreements = append(rep.Disagreements, c.Name)
		}
	}
	for i := range containers {
		if len(results[i]) == 0 {
			continue
		}
		for j := i + 1; j < len(containers); j++ {
			if len(results[j]) > 0 && results[i][0].Equal(results[j][0]) {
				rep.Matches = append(rep.Matches, Match{A: containers[i].Name, B: containers[j].Name})
			}
		}
	}
	log.Info("distinguish finished",
		zap.String("run", rep.RunID), zap.Int("containers", len(containers)),
		zap.Int("disagreements", len(rep.Disagreements)), zap.Int("matches", len(rep.Matches)))
	return rep, nil
}
