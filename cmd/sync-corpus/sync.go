package main

import (
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func syncCmd() *commander.Command {
	var rf runFlags
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			return runSync(&rf, args, os.Stdout, os.Stderr)
		},
		UsageLine: "sync [options] TAGGED_CORPUS UNTAGGED_CORPUS",
		Short:     "write the resynchronized tagged corpus to stdout",
		Long: `
sync reads the tagged and the untagged corpus in lock-step and writes the
tagged corpus to stdout. Selected analyses that no longer exist in the
untagged corpus are replaced by the closest candidate when one shares the
same part of speech. Diagnostics and a summary go to stderr.

	$ sync-corpus sync tagged.txt untagged.txt > retagged.txt
`,
		Flag: *flag.NewFlagSet("sync", flag.ExitOnError),
	}
	rf.register(&cmd.Flag)
	return cmd
}

func runSync(rf *runFlags, args []string, stdout, stderr io.Writer) error {
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
	stats, err := s.SyncFiles(args[0], args[1], stdout)
	if err != nil {
		return err
	}
	return stats.WriteSummary(stderr)
}
