package diff

import "strings"

// Op classifies one line of an edit script.
type Op int

const (
	OpEqual  Op = iota // line present in both revisions
	OpInsert           // line present in the after revision only
	OpDelete           // line present in the before revision only
)

// Line is a single operation in the edit script produced by Lines.
type Line struct {
	Op   Op
	Text string
}

// Lines computes the shortest line-level edit script transforming before
// into after, using the Myers algorithm on whole lines. A trailing newline
// does not count as an extra empty line.
func Lines(before, after []byte) []Line {
	return myers(splitLines(string(before)), splitLines(string(after)))
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// myers runs in O((N+M)*D) time, where D is the size of the minimum edit
// script.
func myers(a, b []string) []Line {
	n := len(a)
	m := len(b)

	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		script := make([]Line, m)
		for i, text := range b {
			script[i] = Line{Op: OpInsert, Text: text}
		}
		return script
	}
	if m == 0 {
		script := make([]Line, n)
		for i, text := range a {
			script[i] = Line{Op: OpDelete, Text: text}
		}
		return script
	}

	max := n + m
	size := 2*max + 1
	v := make([]int, size)

	// trace[d] is a snapshot of v after processing edit distance d.
	var trace [][]int

	for d := 0; d <= max; d++ {
		for k := -d; k <= d; k += 2 {
			idx := k + max
			var x int
			if k == -d || (k != d && v[idx-1] < v[idx+1]) {
				x = v[idx+1] // down: insert
			} else {
				x = v[idx-1] + 1 // right: delete
			}
			y := x - k

			// Follow the diagonal while lines match.
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}

			v[idx] = x

			if x >= n && y >= m {
				snap := make([]int, size)
				copy(snap, v)
				trace = append(trace, snap)
				return backtrack(trace, a, b, d)
			}
		}

		snap := make([]int, size)
		copy(snap, v)
		trace = append(trace, snap)
	}

	// Unreachable: d = n+m always completes the script.
	return nil
}

// backtrack reconstructs the edit script from the v snapshots, walking from
// the end state back to the origin.
func backtrack(trace [][]int, a, b []string, dFinal int) []Line {
	n := len(a)
	m := len(b)
	max := n + m

	x := n
	y := m

	var script []Line

	for d := dFinal; d > 0; d-- {
		k := x - y
		idx := k + max
		vPrev := trace[d-1]

		var prevK int
		if k == -d || (k != d && vPrev[idx-1] < vPrev[idx+1]) {
			prevK = k + 1 // came via an insert
		} else {
			prevK = k - 1 // came via a delete
		}

		prevX := vPrev[prevK+max]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			script = append(script, Line{Op: OpEqual, Text: a[x]})
		}

		if k == prevK+1 {
			x--
			script = append(script, Line{Op: OpDelete, Text: a[x]})
		} else {
			y--
			script = append(script, Line{Op: OpInsert, Text: b[y]})
		}
	}

	// Leading diagonal before the first edit.
	for x > 0 && y > 0 {
		x--
		y--
		script = append(script, Line{Op: OpEqual, Text: a[x]})
	}

	for i, j := 0, len(script)-1; i < j; i, j = i+1, j-1 {
		script[i], script[j] = script[j], script[i]
	}
	return script
}
