package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cours-de-latin/synccorpus"
	"github.com/cours-de-latin/synccorpus/internal/config"
)

// corpusPair is one entry of a batch manifest. Relative paths are
// resolved against the manifest's directory.
type corpusPair struct {
	Tagged   string `yaml:"tagged"`
	Untagged string `yaml:"untagged"`
	Output   string `yaml:"output"`
}

type manifest struct {
	Pairs []corpusPair `yaml:"pairs"`
}

func batchCmd() *commander.Command {
	var (
		rf   runFlags
		jobs int
	)
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			return runBatch(&rf, jobs, args)
		},
		UsageLine: "batch [options] MANIFEST",
		Short:     "synchronize every corpus pair listed in a YAML manifest",
		Long: `
batch synchronizes several independent corpus pairs. The manifest lists
them as:

	pairs:
	  - tagged: a.tagged.txt
	    untagged: a.untagged.txt
	    output: a.retagged.txt

Pairs run in parallel (-j, default batch.concurrency); each pair is
processed sequentially. The first fatal error stops the remaining pairs.
`,
		Flag: *flag.NewFlagSet("batch", flag.ExitOnError),
	}
	rf.register(&cmd.Flag)
	cmd.Flag.IntVar(&jobs, "j", 0, "number of pairs processed at once (0 = config)")
	return cmd
}

func loadManifest(path string) (manifest, error) {
	var m manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Pairs) == 0 {
		return m, fmt.Errorf("manifest %s lists no pairs", path)
	}
	dir := filepath.Dir(path)
	for i, p := range m.Pairs {
		if p.Tagged == "" || p.Untagged == "" || p.Output == "" {
			return m, fmt.Errorf("manifest %s: pair %d needs tagged, untagged and output", path, i+1)
		}
		m.Pairs[i] = corpusPair{
			Tagged:   resolve(dir, p.Tagged),
			Untagged: resolve(dir, p.Untagged),
			Output:   resolve(dir, p.Output),
		}
	}
	return m, nil
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func runBatch(rf *runFlags, jobs int, args []string) error {
	if err := expectFileArguments(args, 1); err != nil {
		return err
	}
	cfg, log, err := rf.setup(os.Stderr)
	if err != nil {
		return err
	}
	m, err := loadManifest(args[0])
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = cfg.Batch.Concurrency
	}

	total, err := syncPairs(context.Background(), cfg, log, m.Pairs, jobs)
	if err != nil {
		return err
	}
	return total.WriteSummary(os.Stderr)
}

// syncPairs runs every pair with its own Syncer, at most jobs at a time.
func syncPairs(ctx context.Context, cfg config.Config, log *slog.Logger, pairs []corpusPair, jobs int) (synccorpus.Stats, error) {
	var (
		mu    sync.Mutex
		total synccorpus.Stats
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, p := range pairs {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plog := log.With("tagged", p.Tagged)
			stats, err := syncPair(cfg, plog, p)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Tagged, err)
			}
			plog.Info("pair synchronized", "output", p.Output,
				"replaced", stats.Replaced, "unresolved", stats.Unresolved)
			mu.Lock()
			total.Add(stats)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return total, err
}

func syncPair(cfg config.Config, log *slog.Logger, p corpusPair) (stats synccorpus.Stats, err error) {
	s, err := newSyncer(cfg, log)
	if err != nil {
		return stats, err
	}
	out, err := os.Create(p.Output)
	if err != nil {
		return stats, err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()
	return s.SyncFiles(p.Tagged, p.Untagged, out)
}
