package repo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/relic/pkg/object"
)

// ReflogEntry is one recorded ref movement from .git/logs. Each line there is
//
//	<old> <new> <ident>\t<message>
//
// where ident is the same "Name <email> unix ±HHMM" shape commit headers use.
type ReflogEntry struct {
	Ref     string
	OldHash object.Hash
	NewHash object.Hash
	Ident   object.Signature
	Message string
}

// ReadReflog reads .git/logs/<ref> and returns entries newest first, up to
// limit when limit > 0. A missing log yields no entries; lines that do not
// parse are skipped.
func (r *Repo) ReadReflog(ref string, limit int) ([]ReflogEntry, error) {
	refName := r.resolveReflogRefName(ref)

	logPath := filepath.Join(r.GitDir, "logs", filepath.FromSlash(refName))
	f, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reflog: %w", err)
	}
	defer f.Close()

	var entries []ReflogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields, message, _ := strings.Cut(line, "\t")
		parts := strings.SplitN(fields, " ", 3)
		if len(parts) < 3 {
			continue
		}
		oldHash, oldErr := object.ParseHash(parts[0])
		newHash, newErr := object.ParseHash(parts[1])
		ident, identErr := object.ParseSignature(parts[2])
		if oldErr != nil || newErr != nil || identErr != nil {
			continue
		}
		entries = append(entries, ReflogEntry{
			Ref:     refName,
			OldHash: oldHash,
			NewHash: newHash,
			Ident:   ident,
			Message: message,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reflog: %w", err)
	}

	// Return newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// resolveReflogRefName maps a user-supplied ref to the log file to read.
// "" and "HEAD" follow a symbolic HEAD to its branch log; a detached HEAD
// falls back to the HEAD log itself.
func (r *Repo) resolveReflogRefName(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "HEAD" {
		head, err := r.Head()
		if err == nil && strings.HasPrefix(head, "refs/") {
			return head
		}
		return "HEAD"
	}
	if strings.HasPrefix(ref, "refs/") {
		return ref
	}
	return "refs/heads/" + ref
}
