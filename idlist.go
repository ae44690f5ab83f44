// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunaygrid

// idList is an ordered set of arena ids with O(1) insertion and removal.
// Links are indexed by id, so each id may be held by at most one list.
type idList struct {
	prev, next []int
	head, tail int
	n          int
}

func newIDList() idList {
	return idList{head: -1, tail: -1}
}

func (l *idList) grow(id int) {
	for len(l.prev) <= id {
		l.prev = append(l.prev, -1)
		l.next = append(l.next, -1)
	}
}

func (l *idList) len() int {
	return l.n
}

// front returns the first id, or -1 if the list is empty.
func (l *idList) front() int {
	return l.head
}

func (l *idList) pushBack(id int) {
	l.insertAfter(l.tail, id)
}

func (l *idList) pushFront(id int) {
	l.insertAfter(-1, id)
}

// insertAfter links id right after the id after; -1 means the front.
func (l *idList) insertAfter(after, id int) {
	l.grow(id)
	l.prev[id] = after
	if after < 0 {
		l.next[id] = l.head
		l.head = id
	} else {
		l.next[id] = l.next[after]
		l.next[after] = id
	}
	if l.next[id] < 0 {
		l.tail = id
	} else {
		l.prev[l.next[id]] = id
	}
	l.n++
}

// remove unlinks id and returns its predecessor, or -1 if it was first.
func (l *idList) remove(id int) int {
	p, n := l.prev[id], l.next[id]
	if p < 0 {
		l.head = n
	} else {
		l.next[p] = n
	}
	if n < 0 {
		l.tail = p
	} else {
		l.prev[n] = p
	}
	l.prev[id], l.next[id] = -1, -1
	l.n--
	return p
}

// ids returns the list contents in order.
func (l *idList) ids() []int {
	ids := make([]int, 0, l.n)
	for id := l.head; id >= 0; id = l.next[id] {
		ids = append(ids, id)
	}
	return ids
}

func (l *idList) reset() {
	*l = newIDList()
}
