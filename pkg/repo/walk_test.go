package repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/odvcencio/relic/pkg/object"
)

// helper: buildWalkFixture writes
//
//	z.txt
//	mid/m.txt
//	a.txt
//
// with the root entries deliberately out of name order, and returns the
// root tree hash.
func buildWalkFixture(t *testing.T, r *Repo) object.Hash {
	t.Helper()
	blobZ := writeTestObject(t, r, object.TypeBlob, []byte("zeta\n"))
	blobM := writeTestObject(t, r, object.TypeBlob, []byte("mid\n"))
	blobA := writeTestObject(t, r, object.TypeBlob, []byte("alpha\n"))

	mid := writeTestTree(t, r, []object.TreeEntry{
		{Mode: object.TreeModeFile, Name: "m.txt", Hash: blobM},
	})
	return writeTestTree(t, r, []object.TreeEntry{
		{Mode: object.TreeModeFile, Name: "z.txt", Hash: blobZ},
		{Mode: object.TreeModeDir, Name: "mid", Hash: mid},
		{Mode: object.TreeModeFile, Name: "a.txt", Hash: blobA},
	})
}

func entryPaths(files []FileEntry) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

// Test 1: files come out depth-first in declaration order, not name order.
func TestWalkTree_DeclarationOrder(t *testing.T) {
	r := initTestRepo(t)
	root := buildWalkFixture(t, r)

	files, err := r.ListFiles(root, MissingObjectFail)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{"z.txt", "mid/m.txt", "a.txt"}
	got := entryPaths(files)
	if len(got) != len(want) {
		t.Fatalf("ListFiles returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("files[%d].Path = %q, want %q", i, got[i], want[i])
		}
	}
	if files[0].Mode != object.TreeModeFile {
		t.Errorf("files[0].Mode = %q, want %q", files[0].Mode, object.TreeModeFile)
	}
}

// Test 2: a commit root is unwrapped to its tree before walking.
func TestWalkTree_CommitRoot(t *testing.T) {
	r := initTestRepo(t)
	root := buildWalkFixture(t, r)
	commit := writeTestCommit(t, r, root, nil, "snapshot")

	direct, err := r.ListFiles(root, MissingObjectFail)
	if err != nil {
		t.Fatalf("ListFiles(tree): %v", err)
	}
	viaCommit, err := r.ListFiles(commit, MissingObjectFail)
	if err != nil {
		t.Fatalf("ListFiles(commit): %v", err)
	}
	if len(direct) != len(viaCommit) {
		t.Fatalf("walk lengths differ: tree %d, commit %d", len(direct), len(viaCommit))
	}
	for i := range direct {
		if direct[i] != viaCommit[i] {
			t.Errorf("entry %d differs: tree %+v, commit %+v", i, direct[i], viaCommit[i])
		}
	}
}

// Test 3: a blob root emits one entry with an empty path.
func TestWalkTree_BlobRoot(t *testing.T) {
	r := initTestRepo(t)
	blob := writeTestObject(t, r, object.TypeBlob, []byte("solo\n"))

	files, err := r.ListFiles(blob, MissingObjectFail)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("ListFiles returned %d entries, want 1", len(files))
	}
	if files[0].Path != "" {
		t.Errorf("Path = %q, want empty", files[0].Path)
	}
	if files[0].Hash != blob {
		t.Errorf("Hash = %q, want %q", files[0].Hash, blob)
	}
}

// Test 4: under the fail policy a missing child aborts with no partial result.
func TestWalkTree_MissingChildFails(t *testing.T) {
	r := initTestRepo(t)
	present := writeTestObject(t, r, object.TypeBlob, []byte("here\n"))
	ghost := object.HashObject(object.TypeBlob, []byte("never written"))
	root := writeTestTree(t, r, []object.TreeEntry{
		{Mode: object.TreeModeFile, Name: "here.txt", Hash: present},
		{Mode: object.TreeModeFile, Name: "gone.txt", Hash: ghost},
	})

	files, err := r.ListFiles(root, MissingObjectFail)
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("ListFiles error = %v, want ErrNotFound", err)
	}
	if files != nil {
		t.Errorf("ListFiles returned %d entries alongside the error, want none", len(files))
	}
}

// Test 5: under emit-path a missing child becomes a leaf entry and the walk
// keeps going.
func TestWalkTree_MissingChildEmitPath(t *testing.T) {
	r := initTestRepo(t)
	present := writeTestObject(t, r, object.TypeBlob, []byte("here\n"))
	ghost := object.HashObject(object.TypeBlob, []byte("never written"))
	sub := writeTestTree(t, r, []object.TreeEntry{
		{Mode: object.TreeModeFile, Name: "gone.txt", Hash: ghost},
	})
	root := writeTestTree(t, r, []object.TreeEntry{
		{Mode: object.TreeModeDir, Name: "sub", Hash: sub},
		{Mode: object.TreeModeFile, Name: "here.txt", Hash: present},
	})

	files, err := r.ListFiles(root, MissingObjectEmitPath)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{"sub/gone.txt", "here.txt"}
	got := entryPaths(files)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("ListFiles paths = %v, want %v", got, want)
	}
	if files[0].Hash != ghost {
		t.Errorf("emitted entry hash = %q, want %q", files[0].Hash, ghost)
	}
}

// Test 6: a missing walk root is an error under every policy.
func TestWalkTree_MissingRootFails(t *testing.T) {
	r := initTestRepo(t)
	ghost := object.HashObject(object.TypeTree, []byte("never written"))

	for _, policy := range []MissingObjectPolicy{MissingObjectFail, MissingObjectEmitPath} {
		if _, err := r.WalkTree(ghost, policy); !errors.Is(err, object.ErrNotFound) {
			t.Errorf("policy %q: WalkTree error = %v, want ErrNotFound", policy, err)
		}
	}
}

// Test 7: nesting depth is bounded by the heap, not the call stack.
func TestWalkTree_DeepNesting(t *testing.T) {
	r := initTestRepo(t)
	const depth = 50

	leaf := writeTestObject(t, r, object.TypeBlob, []byte("bottom\n"))
	cur := writeTestTree(t, r, []object.TreeEntry{
		{Mode: object.TreeModeFile, Name: "leaf.txt", Hash: leaf},
	})
	for i := 0; i < depth; i++ {
		cur = writeTestTree(t, r, []object.TreeEntry{
			{Mode: object.TreeModeDir, Name: fmt.Sprintf("d%02d", i), Hash: cur},
		})
	}

	files, err := r.ListFiles(cur, MissingObjectFail)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("ListFiles returned %d entries, want 1", len(files))
	}
	wantDepth := depth + 1 // d49/.../d00/leaf.txt
	gotDepth := 1
	for _, c := range files[0].Path {
		if c == '/' {
			gotDepth++
		}
	}
	if gotDepth != wantDepth {
		t.Errorf("path depth = %d (%q), want %d", gotDepth, files[0].Path, wantDepth)
	}
}

// Test 8: a commit object reached through a tree entry is malformed data.
func TestWalkTree_CommitInsideTree(t *testing.T) {
	r := initTestRepo(t)
	blob := writeTestObject(t, r, object.TypeBlob, []byte("data\n"))
	inner := writeTestTree(t, r, []object.TreeEntry{
		{Mode: object.TreeModeFile, Name: "data.txt", Hash: blob},
	})
	submodule := writeTestCommit(t, r, inner, nil, "embedded")
	root := writeTestTree(t, r, []object.TreeEntry{
		{Mode: object.TreeModeGitlink, Name: "vendor", Hash: submodule},
	})

	_, err := r.ListFiles(root, MissingObjectFail)
	if !errors.Is(err, object.ErrMalformed) {
		t.Fatalf("ListFiles error = %v, want ErrMalformed", err)
	}
}

// Test 9: an empty tree walks to nothing.
func TestWalkTree_EmptyTree(t *testing.T) {
	r := initTestRepo(t)
	root := writeTestTree(t, r, nil)

	files, err := r.ListFiles(root, MissingObjectFail)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("ListFiles returned %d entries, want 0", len(files))
	}
}

func TestParseMissingPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    MissingObjectPolicy
		wantErr bool
	}{
		{"fail", MissingObjectFail, false},
		{"emit-path", MissingObjectEmitPath, false},
		{"", "", true},
		{"Fail", "", true},
		{"skip", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMissingPolicy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMissingPolicy(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMissingPolicy(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMissingPolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
