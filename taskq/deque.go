// File: taskq/deque.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// invokerDeque is a growable ring deque with stable logical indices. The
// front always carries the smallest live index, popping the front never
// renumbers the survivors, and removal by index nullifies the slot in
// place so a waiter can lift a specific invoker out of the middle without
// popping everything ahead of it. Nullified front slots are trimmed
// lazily after each front removal.

package taskq

// invokerDeque is not safe for concurrent use; the queue's main mutex
// guards every call.
type invokerDeque struct {
	items []*invoker
	head  int   // physical position of the logical front
	size  int   // occupied slots, nullified ones included
	front int64 // logical index of the front slot
}

const dequeMinCap = 16

func (d *invokerDeque) empty() bool { return d.size == 0 }

func (d *invokerDeque) len() int { return d.size }

// pushBack appends inv and returns its assigned logical index: one past
// the current back, which after full drains degrades to the next natural
// integer.
func (d *invokerDeque) pushBack(inv *invoker) int64 {
	if d.size == len(d.items) {
		d.grow()
	}
	index := d.front + int64(d.size)
	d.items[(d.head+d.size)%len(d.items)] = inv
	d.size++
	return index
}

// pushFront prepends inv and returns its assigned logical index, one less
// than the current front's. An empty deque re-establishes index 0.
func (d *invokerDeque) pushFront(inv *invoker) int64 {
	if d.size == len(d.items) {
		d.grow()
	}
	if d.size == 0 {
		d.front = 1
	}
	d.head = (d.head - 1 + len(d.items)) % len(d.items)
	d.front--
	d.items[d.head] = inv
	d.size++
	return d.front
}

// popFront removes and returns the front invoker, then trims any slots
// nullified by removeByIndex. Returns nil when empty.
//
// The front slot is never nil while the deque is non-empty: both front
// removal paths trim before returning, and removeByIndex only nullifies
// non-front slots. A nil front is a broken invariant, not a recoverable
// condition.
func (d *invokerDeque) popFront() *invoker {
	if d.size == 0 {
		return nil
	}
	inv := d.items[d.head]
	if inv == nil {
		panic("taskq: nullified slot at deque front")
	}
	d.advance()
	d.trimFront()
	return inv
}

// removeByIndex extracts the invoker carrying the given logical index,
// nullifying its slot without shifting the others. It returns nil when
// the index is outside the live extent or the slot was already claimed;
// the caller treats that as "not found", not as an error.
func (d *invokerDeque) removeByIndex(index int64) *invoker {
	offset := index - d.front
	if offset < 0 || offset >= int64(d.size) {
		return nil
	}
	if offset == 0 {
		return d.popFront()
	}
	pos := (d.head + int(offset)) % len(d.items)
	inv := d.items[pos]
	d.items[pos] = nil
	return inv
}

func (d *invokerDeque) advance() {
	d.items[d.head] = nil
	d.head = (d.head + 1) % len(d.items)
	d.size--
	d.front++
}

func (d *invokerDeque) trimFront() {
	for d.size > 0 && d.items[d.head] == nil {
		d.head = (d.head + 1) % len(d.items)
		d.size--
		d.front++
	}
}

func (d *invokerDeque) grow() {
	newCap := len(d.items) * 2
	if newCap < dequeMinCap {
		newCap = dequeMinCap
	}
	items := make([]*invoker, newCap)
	for i := 0; i < d.size; i++ {
		items[i] = d.items[(d.head+i)%len(d.items)]
	}
	d.items = items
	d.head = 0
}
