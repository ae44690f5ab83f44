// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunaygrid

type opKind uint8

const (
	opInit opKind = iota
	opCreateFacet
	opKillFacet
	opKillNode
	opMarkMeta
	opCreateElement
)

// op is one reversible mutation. prev is the predecessor the entity had in
// its alive list before removal.
type op struct {
	kind opKind
	id   int
	prev int
}

// journal groups ops into steps so that the latest step can be replayed
// backwards.
type journal struct {
	ops   []op
	marks []int
	off   bool
}

func (j *journal) begin() {
	if j.off {
		return
	}
	j.marks = append(j.marks, len(j.ops))
}

func (j *journal) record(kind opKind, id, prev int) {
	if j.off {
		return
	}
	j.ops = append(j.ops, op{kind: kind, id: id, prev: prev})
}

// pop removes the latest step and returns its ops in reverse order.
func (j *journal) pop() ([]op, bool) {
	if len(j.marks) == 0 {
		return nil, false
	}
	start := j.marks[len(j.marks)-1]
	j.marks = j.marks[:len(j.marks)-1]

	step := j.ops[start:]
	rev := make([]op, len(step))
	for i, o := range step {
		rev[len(step)-1-i] = o
	}
	j.ops = j.ops[:start]
	return rev, true
}

func (j *journal) depth() int {
	return len(j.marks)
}

func (j *journal) reset() {
	j.ops = j.ops[:0]
	j.marks = j.marks[:0]
}
