package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

const (
	taggedCorpus   = "../../testdata/tagged.txt"
	untaggedCorpus = "../../testdata/untagged.txt"
)

func setEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SYNC_CORPUS_ENCODING",
		"SYNC_CORPUS_LOCALE",
		"SYNC_CORPUS_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("SYNC_CORPUS_LOG_FORMAT", "json")
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		stderr string
	}{
		{nil, 0, ""},
		{errProblemsLeft, 1, ""},
		{fmt.Errorf("check: %w", errProblemsLeft), 1, ""},
		{
			errors.New("expected 2 file arguments, got 1"),
			2,
			"sync-corpus: expected 2 file arguments, got 1\n" +
				"Usage: sync-corpus sync TAGGED_CORPUS UNTAGGED_CORPUS > RETAGGED_CORPUS\n",
		},
	}
	for _, tt := range tests {
		var stderr bytes.Buffer
		if got := exitStatus(&stderr, "sync-corpus", tt.err); got != tt.status {
			t.Errorf("exitStatus(%v) = %d, want %d", tt.err, got, tt.status)
		}
		if stderr.String() != tt.stderr {
			t.Errorf("exitStatus(%v) wrote %q, want %q", tt.err, stderr.String(), tt.stderr)
		}
	}
}

func TestRunSync(t *testing.T) {
	setEnv(t)
	var stdout, stderr bytes.Buffer
	if err := runSync(&runFlags{}, []string{taggedCorpus, untaggedCorpus}, &stdout, &stderr); err != nil {
		t.Fatalf("runSync: %v", err)
	}
	tagged, err := os.ReadFile(taggedCorpus)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Replace(string(tagged), "house<n><sg>", "house<n><pl>", 1)
	if stdout.String() != want {
		t.Errorf("stdout =\n%q\nwant\n%q", stdout.String(), want)
	}
	log := stderr.String()
	if !strings.Contains(log, `"kind":"replacement-found"`) {
		t.Errorf("stderr has no replacement diagnostic:\n%s", log)
	}
	if !strings.HasSuffix(log, "1 symbols replaced.\n1 problematic symbols left without replacement.\n") {
		t.Errorf("stderr does not end with the summary:\n%s", log)
	}
}

func TestRunSyncErrors(t *testing.T) {
	setEnv(t)
	tests := [][]string{
		{taggedCorpus},
		{taggedCorpus, "../../testdata/missing.txt"},
		{taggedCorpus, ""},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		err := runSync(&runFlags{}, args, &stdout, &stderr)
		if err == nil {
			t.Errorf("runSync(%q) succeeded", args)
			continue
		}
		if got := exitStatus(&bytes.Buffer{}, "sync-corpus", err); got != exitFatal {
			t.Errorf("runSync(%q) exit status = %d, want %d", args, got, exitFatal)
		}
	}

	var stdout, stderr bytes.Buffer
	err := runSync(&runFlags{encoding: "klingon-8"}, []string{taggedCorpus, untaggedCorpus}, &stdout, &stderr)
	if err == nil {
		t.Error("runSync accepted an unknown encoding")
	}
}

func TestRunCheck(t *testing.T) {
	setEnv(t)
	tests := []struct {
		untagged string
		wantErr  error
		summary  string
	}{
		{untaggedCorpus, errProblemsLeft, "1 symbols replaced.\n1 problematic symbols left without replacement.\n"},
		{taggedCorpus, nil, "0 symbols replaced.\n0 problematic symbols left without replacement.\n"},
	}
	for _, tt := range tests {
		var stderr bytes.Buffer
		err := runCheck(&runFlags{}, []string{taggedCorpus, tt.untagged}, &stderr)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("runCheck(%s) = %v, want %v", tt.untagged, err, tt.wantErr)
		}
		if !strings.HasSuffix(stderr.String(), tt.summary) {
			t.Errorf("runCheck(%s) stderr =\n%s\nwant summary %q", tt.untagged, stderr.String(), tt.summary)
		}
		if !strings.Contains(stderr.String(), `"msg":"check finished"`) {
			t.Errorf("runCheck(%s) did not log the informational counts", tt.untagged)
		}
	}
}
