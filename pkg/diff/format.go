package diff

import (
	"bytes"
	"fmt"
	"strings"
)

// Unified renders the line diff between two revisions of a file with a/ and
// b/ headers:
//
//	--- a/path
//	+++ b/path
//	 context line
//	-removed line
//	+added line
//
// A nil before stands for a file that did not exist yet, a nil after for a
// deleted file; their headers read /dev/null. Identical revisions render as
// the empty string, and binary payloads get a marker line instead of a line
// dump.
func Unified(path string, before, after []byte) string {
	if bytes.Equal(before, after) {
		return ""
	}

	var b strings.Builder
	if before == nil {
		fmt.Fprintln(&b, "--- /dev/null")
	} else {
		fmt.Fprintf(&b, "--- a/%s\n", path)
	}
	if after == nil {
		fmt.Fprintln(&b, "+++ /dev/null")
	} else {
		fmt.Fprintf(&b, "+++ b/%s\n", path)
	}

	if isBinary(before) || isBinary(after) {
		fmt.Fprintln(&b, "Binary files differ")
		return b.String()
	}

	for _, l := range Lines(before, after) {
		switch l.Op {
		case OpDelete:
			fmt.Fprintf(&b, "-%s\n", l.Text)
		case OpInsert:
			fmt.Fprintf(&b, "+%s\n", l.Text)
		default:
			fmt.Fprintf(&b, " %s\n", l.Text)
		}
	}
	return b.String()
}

func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0
}
