package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/relic/pkg/object"
)

// helper: writeTestReflog writes raw lines to .git/logs/<ref>.
func writeTestReflog(t *testing.T, r *Repo, ref string, lines []string) {
	t.Helper()
	path := filepath.Join(r.GitDir, "logs", filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write reflog: %v", err)
	}
}

func reflogLine(from, to object.Hash, message string) string {
	return fmt.Sprintf("%s %s C O Mitter <committer@example.com> 1112912053 -0700\t%s", from, to, message)
}

func TestReadReflog_NewestFirst(t *testing.T) {
	r := initTestRepo(t)
	zero := object.Hash(strings.Repeat("0", 40))
	h1 := object.Hash(strings.Repeat("11", 20))
	h2 := object.Hash(strings.Repeat("22", 20))
	writeTestReflog(t, r, "refs/heads/main", []string{
		reflogLine(zero, h1, "commit (initial): one"),
		reflogLine(h1, h2, "commit: two"),
	})

	entries, err := r.ReadReflog("main", 10)
	if err != nil {
		t.Fatalf("ReadReflog: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ReadReflog returned %d entries, want 2", len(entries))
	}
	if entries[0].NewHash != h2 {
		t.Errorf("latest new hash = %q, want %q", entries[0].NewHash, h2)
	}
	if entries[0].OldHash != h1 {
		t.Errorf("latest old hash = %q, want %q", entries[0].OldHash, h1)
	}
	if entries[0].Message != "commit: two" {
		t.Errorf("latest message = %q, want %q", entries[0].Message, "commit: two")
	}
	if entries[1].NewHash != h1 {
		t.Errorf("previous new hash = %q, want %q", entries[1].NewHash, h1)
	}
	if entries[0].Ident.Name != "C O Mitter" {
		t.Errorf("ident name = %q, want %q", entries[0].Ident.Name, "C O Mitter")
	}
	if entries[0].Ident.Zone != "-0700" {
		t.Errorf("ident zone = %q, want %q", entries[0].Ident.Zone, "-0700")
	}
	if entries[0].Ref != "refs/heads/main" {
		t.Errorf("Ref = %q, want %q", entries[0].Ref, "refs/heads/main")
	}
}

func TestReadReflog_RespectsLimit(t *testing.T) {
	r := initTestRepo(t)
	var lines []string
	prev := object.Hash(strings.Repeat("0", 40))
	for i := 0; i < 5; i++ {
		next := object.Hash(fmt.Sprintf("%040x", i+1))
		lines = append(lines, reflogLine(prev, next, fmt.Sprintf("commit: %d", i+1)))
		prev = next
	}
	writeTestReflog(t, r, "refs/heads/main", lines)

	entries, err := r.ReadReflog("main", 2)
	if err != nil {
		t.Fatalf("ReadReflog: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries length = %d, want 2", len(entries))
	}
	if entries[0].NewHash != object.Hash(fmt.Sprintf("%040x", 5)) {
		t.Errorf("latest new hash = %q, want newest entry", entries[0].NewHash)
	}
}

func TestReadReflog_MissingLogIsEmpty(t *testing.T) {
	r := initTestRepo(t)

	entries, err := r.ReadReflog("main", 10)
	if err != nil {
		t.Fatalf("ReadReflog: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ReadReflog returned %d entries for a missing log, want 0", len(entries))
	}
}

func TestReadReflog_HEADFollowsCurrentBranch(t *testing.T) {
	r := initTestRepo(t)
	zero := object.Hash(strings.Repeat("0", 40))
	h := object.Hash(strings.Repeat("33", 20))
	writeTestReflog(t, r, "refs/heads/main", []string{
		reflogLine(zero, h, "commit (initial): tip"),
	})

	entries, err := r.ReadReflog("HEAD", 10)
	if err != nil {
		t.Fatalf("ReadReflog(HEAD): %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ReadReflog(HEAD) returned %d entries, want 1", len(entries))
	}
	if entries[0].NewHash != h {
		t.Errorf("new hash = %q, want %q", entries[0].NewHash, h)
	}
}

func TestReadReflog_SkipsUnparsableLines(t *testing.T) {
	r := initTestRepo(t)
	zero := object.Hash(strings.Repeat("0", 40))
	h := object.Hash(strings.Repeat("44", 20))
	writeTestReflog(t, r, "refs/heads/main", []string{
		"not a reflog line",
		reflogLine(zero, h, "commit (initial): good"),
		"short line\tmessage",
	})

	entries, err := r.ReadReflog("main", 10)
	if err != nil {
		t.Fatalf("ReadReflog: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ReadReflog returned %d entries, want 1", len(entries))
	}
	if entries[0].Message != "commit (initial): good" {
		t.Errorf("message = %q, want the surviving entry", entries[0].Message)
	}
}
