// Command sync-corpus rewrites a tagged corpus so that every selected
// analysis exists in the untagged corpus produced by the current
// dictionary.
//
//	sync-corpus sync  TAGGED_CORPUS UNTAGGED_CORPUS > RETAGGED_CORPUS
//	sync-corpus check TAGGED_CORPUS UNTAGGED_CORPUS
//	sync-corpus batch MANIFEST.yaml
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/cours-de-latin/synccorpus"
	"github.com/cours-de-latin/synccorpus/internal/config"
	"github.com/cours-de-latin/synccorpus/internal/logging"
)

// exitFatal is the status for argument, file and alignment errors.
const exitFatal = 2

// errProblemsLeft makes check exit with status 1 without a usage message.
var errProblemsLeft = errors.New("problematic symbols left without replacement")

func main() {
	app := &commander.Command{
		UsageLine: filepath.Base(os.Args[0]) + " <command> [arguments]",
		Short:     "resynchronize a tagged corpus with its untagged counterpart",
		Subcommands: []*commander.Command{
			syncCmd(),
			checkCmd(),
			batchCmd(),
		},
		Flag: *flag.NewFlagSet("sync-corpus", flag.ExitOnError),
	}
	if len(os.Args) < 2 {
		app.Usage()
		os.Exit(exitFatal)
	}
	err := app.Dispatch(os.Args[1:])
	os.Exit(exitStatus(os.Stderr, filepath.Base(os.Args[0]), err))
}

// exitStatus maps the result of a command to the process exit status,
// printing the error and the usage line for fatal errors.
func exitStatus(stderr io.Writer, prog string, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errProblemsLeft):
		return 1
	}
	fmt.Fprintf(stderr, "%s: %v\n", prog, err)
	fmt.Fprintf(stderr, "Usage: %s sync TAGGED_CORPUS UNTAGGED_CORPUS > RETAGGED_CORPUS\n", prog)
	return exitFatal
}

// runFlags are shared by every subcommand.
type runFlags struct {
	configPath string
	encoding   string
	locale     string
}

func (f *runFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "c", "", "YAML configuration file")
	fs.StringVar(&f.encoding, "encoding", "", "corpus encoding (overrides config)")
	fs.StringVar(&f.locale, "locale", "", "locale for case-insensitive lemma comparison (overrides config)")
}

// setup loads the configuration and builds the diagnostics logger
// writing to stderr.
func (f *runFlags) setup(stderr io.Writer) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, nil, err
	}
	if f.encoding != "" {
		cfg.Encoding = f.encoding
	}
	if f.locale != "" {
		cfg.Locale = f.locale
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	log, err := logging.New(stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func newSyncer(cfg config.Config, log *slog.Logger) (*synccorpus.Syncer, error) {
	return synccorpus.New(synccorpus.Options{
		Encoding: cfg.Encoding,
		Locale:   cfg.Locale,
		Reporter: synccorpus.LogReporter{Log: log},
	})
}

func expectFileArguments(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("expected %d file arguments, got %d", n, len(args))
	}
	for _, a := range args {
		if a == "" {
			return errors.New("empty file argument")
		}
	}
	return nil
}
