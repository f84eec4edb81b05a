package main

import (
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func checkCmd() *commander.Command {
	var rf runFlags
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			return runCheck(&rf, args, os.Stderr)
		},
		UsageLine: "check [options] TAGGED_CORPUS UNTAGGED_CORPUS",
		Short:     "report how a corpus pair would be synchronized",
		Long: `
check runs the same synchronization as sync but discards the corpus. It
exits with status 1 when some selected analyses could not be replaced.
`,
		Flag: *flag.NewFlagSet("check", flag.ExitOnError),
	}
	rf.register(&cmd.Flag)
	return cmd
}

func runCheck(rf *runFlags, args []string, stderr io.Writer) error {
	if err := expectFileArguments(args, 2); err != nil {
		return err
	}
	cfg, log, err := rf.setup(stderr)
	if err != nil {
		return err
	}
	s, err := newSyncer(cfg, log)
	if err != nil {
		return err
	}
	stats, err := s.SyncFiles(args[0], args[1], io.Discard)
	if err != nil {
		return err
	}
	log.Info("check finished",
		"tokens", stats.Tokens,
		"exact", stats.Exact,
		"case_insensitive", stats.CaseInsensitive,
		"no_dictionary", stats.NoDictionary,
	)
	if err := stats.WriteSummary(stderr); err != nil {
		return err
	}
	if stats.Unresolved > 0 {
		return errProblemsLeft
	}
	return nil
}
