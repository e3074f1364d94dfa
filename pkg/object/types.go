package object

// Hash is a 40-character hex-encoded SHA-1 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

const (
	// Tree mode constants matching Git's canonical mode strings.
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
	TreeModeSymlink    = "120000"
	TreeModeGitlink    = "160000"
)

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// Header is one uninterpreted commit header, preserved verbatim.
type Header struct {
	Key   string
	Value string
}

// TreeEntry is one entry in a tree object, in payload field order.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// IsDir reports whether the entry references a subtree.
func (e TreeEntry) IsDir() bool {
	return e.Mode == TreeModeDir || e.Mode == "040000"
}

// Type returns the object type the entry points at, derived from its mode.
func (e TreeEntry) Type() ObjectType {
	switch {
	case e.IsDir():
		return TypeTree
	case e.Mode == TreeModeGitlink:
		return TypeCommit
	default:
		return TypeBlob
	}
}

// TreeObj holds tree entries in payload declaration order.
type TreeObj struct {
	Entries []TreeEntry
}

// CommitObj represents a commit pointing to a tree with metadata.
type CommitObj struct {
	TreeHash  Hash
	Parents   []Hash
	Author    Signature
	Committer Signature
	Extra     []Header // headers beyond tree/parent/author/committer, in order
	Message   string
}
