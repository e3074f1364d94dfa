package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// MarshalTree serializes a TreeObj in Git's binary layout. Each entry is
//
//	<mode> <name>\0<20 raw digest bytes>
//
// with no separator between entries and nothing after the final digest.
// Entries are emitted in declaration order.
func MarshalTree(tr *TreeObj) ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range tr.Entries {
		raw, err := hex.DecodeString(string(e.Hash))
		if err != nil || len(raw) != RawHashSize {
			return nil, fmt.Errorf("marshal tree: entry %q: %w: %q", e.Name, ErrBadHash, e.Hash)
		}
		fmt.Fprintf(&buf, "%s %s\x00", e.Mode, e.Name)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses a TreeObj from its binary form. The text segment of
// each record extends to the first NUL and splits on the first space, so
// names may contain spaces. The final record is recognized by exhausting the
// payload; a leftover shorter than one record is malformed.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	rest := data
	for len(rest) > 0 {
		nul := bytes.IndexByte(rest, 0)
		if nul < 0 {
			return nil, fmt.Errorf("unmarshal tree: %w: entry missing NUL terminator", ErrMalformed)
		}
		mode, name, ok := strings.Cut(string(rest[:nul]), " ")
		if !ok || mode == "" || name == "" {
			return nil, fmt.Errorf("unmarshal tree: %w: malformed entry %q", ErrMalformed, rest[:nul])
		}
		if len(rest) < nul+1+RawHashSize {
			return nil, fmt.Errorf("unmarshal tree: %w: truncated digest for entry %q", ErrMalformed, name)
		}
		digest := rest[nul+1 : nul+1+RawHashSize]
		tr.Entries = append(tr.Entries, TreeEntry{
			Mode: mode,
			Name: name,
			Hash: Hash(hex.EncodeToString(digest)),
		})
		rest = rest[nul+1+RawHashSize:]
	}
	return tr, nil
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj:
//
//	tree H
//	parent H     (zero or more, in order)
//	author A U Thor <author@example.com> 1112911993 +0200
//	committer C O Mitter <committer@example.com> 1112911993 +0200
//	<extra headers verbatim>
//
//	message
//
// Multi-line extra header values are folded with a leading space per
// continuation line, matching the form they were read in.
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", string(c.TreeHash))
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", string(p))
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author)
	fmt.Fprintf(&buf, "committer %s\n", c.Committer)
	for _, x := range c.Extra {
		fmt.Fprintf(&buf, "%s %s\n", x.Key, strings.ReplaceAll(x.Value, "\n", "\n "))
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	if c.Message != "" {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its serialized form. The header
// block runs to the first blank line; everything after is the message, with
// trailing newlines trimmed. A header line beginning with a space continues
// the previous uninterpreted header's value.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: %w: missing header/message separator", ErrMalformed)
	}
	header := string(data[:idx])
	message := strings.TrimRight(string(data[idx+2:]), "\n")

	c := &CommitObj{Message: message}
	var sawAuthor, sawCommitter bool
	for _, line := range strings.Split(header, "\n") {
		if strings.HasPrefix(line, " ") {
			if len(c.Extra) == 0 {
				return nil, fmt.Errorf("unmarshal commit: %w: continuation line %q without header", ErrMalformed, line)
			}
			c.Extra[len(c.Extra)-1].Value += "\n" + line[1:]
			continue
		}
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: %w: malformed header line %q", ErrMalformed, line)
		}
		switch key {
		case "tree":
			if c.TreeHash != "" {
				return nil, fmt.Errorf("unmarshal commit: %w: duplicate tree header", ErrMalformed)
			}
			h, err := ParseHash(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: %w: tree %q", ErrMalformed, val)
			}
			c.TreeHash = h
		case "parent":
			h, err := ParseHash(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: %w: parent %q", ErrMalformed, val)
			}
			c.Parents = append(c.Parents, h)
		case "author":
			sig, err := ParseSignature(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: author: %w", err)
			}
			c.Author = sig
			sawAuthor = true
		case "committer":
			sig, err := ParseSignature(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: committer: %w", err)
			}
			c.Committer = sig
			sawCommitter = true
		default:
			c.Extra = append(c.Extra, Header{Key: key, Value: val})
		}
	}
	if c.TreeHash == "" {
		return nil, fmt.Errorf("unmarshal commit: %w: missing tree header", ErrMalformed)
	}
	if !sawAuthor || !sawCommitter {
		return nil, fmt.Errorf("unmarshal commit: %w: missing author or committer header", ErrMalformed)
	}
	return c, nil
}
