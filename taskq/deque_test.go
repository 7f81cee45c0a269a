// File: taskq/deque_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package taskq

import "testing"

func mkInvoker() *invoker {
	return newInvoker(func() (any, error) { return nil, nil }, newSharedState())
}

func TestDeque_PushBackIndices(t *testing.T) {
	var d invokerDeque
	for i := 0; i < 5; i++ {
		if got := d.pushBack(mkInvoker()); got != int64(i) {
			t.Errorf("Expected pushBack index %d, got %d", i, got)
		}
	}
	if d.len() != 5 {
		t.Errorf("Expected length 5, got %d", d.len())
	}
}

func TestDeque_PopDoesNotRenumber(t *testing.T) {
	var d invokerDeque
	a, b := mkInvoker(), mkInvoker()
	d.pushBack(a)
	idxB := d.pushBack(b)

	if got := d.popFront(); got != a {
		t.Fatalf("Expected front to be first pushed invoker")
	}
	// b keeps its logical index after the pop.
	if got := d.removeByIndex(idxB); got != b {
		t.Errorf("Expected removeByIndex(%d) to find the surviving invoker", idxB)
	}
	if !d.empty() {
		t.Errorf("Expected empty deque, size %d", d.len())
	}
}

func TestDeque_PushFrontAssignsSmallerIndices(t *testing.T) {
	var d invokerDeque
	d.pushBack(mkInvoker()) // index 0
	d.pushBack(mkInvoker()) // index 1

	if got := d.pushFront(mkInvoker()); got != -1 {
		t.Errorf("Expected pushFront index -1, got %d", got)
	}
	if got := d.pushFront(mkInvoker()); got != -2 {
		t.Errorf("Expected pushFront index -2, got %d", got)
	}
	if got := d.pushBack(mkInvoker()); got != 2 {
		t.Errorf("Expected pushBack index 2 after front inserts, got %d", got)
	}
}

func TestDeque_PushFrontOnEmptyEstablishesZero(t *testing.T) {
	var d invokerDeque
	d.pushBack(mkInvoker())
	d.pushBack(mkInvoker())
	d.popFront()
	d.popFront()

	if got := d.pushFront(mkInvoker()); got != 0 {
		t.Errorf("Expected pushFront on empty deque to assign index 0, got %d", got)
	}
}

func TestDeque_PushBackAfterDrainContinuesNumbering(t *testing.T) {
	var d invokerDeque
	d.pushBack(mkInvoker()) // 0
	d.pushBack(mkInvoker()) // 1
	d.popFront()
	d.popFront()

	if got := d.pushBack(mkInvoker()); got != 2 {
		t.Errorf("Expected numbering to continue at 2 after drain, got %d", got)
	}
}

func TestDeque_RemoveByIndexMiddleAndTrim(t *testing.T) {
	var d invokerDeque
	invs := make([]*invoker, 4)
	for i := range invs {
		invs[i] = mkInvoker()
		d.pushBack(invs[i])
	}

	// Lift index 1 and 2 out of the middle.
	if got := d.removeByIndex(1); got != invs[1] {
		t.Fatalf("Expected to extract second invoker")
	}
	if got := d.removeByIndex(2); got != invs[2] {
		t.Fatalf("Expected to extract third invoker")
	}
	// Claimed slots report not-found.
	if got := d.removeByIndex(1); got != nil {
		t.Errorf("Expected already claimed slot to return nil")
	}

	// Popping the front trims the nullified slots behind it.
	if got := d.popFront(); got != invs[0] {
		t.Fatalf("Expected original front")
	}
	if got := d.popFront(); got != invs[3] {
		t.Fatalf("Expected last invoker after lazy trim")
	}
	if !d.empty() {
		t.Errorf("Expected empty deque, size %d", d.len())
	}
}

func TestDeque_RemoveByIndexOutOfRange(t *testing.T) {
	var d invokerDeque
	d.pushBack(mkInvoker())
	if got := d.removeByIndex(-1); got != nil {
		t.Errorf("Expected nil for index before front")
	}
	if got := d.removeByIndex(7); got != nil {
		t.Errorf("Expected nil for index past back")
	}
}

func TestDeque_GrowPreservesOrderAndIndices(t *testing.T) {
	var d invokerDeque
	invs := make([]*invoker, dequeMinCap*3)
	for i := range invs {
		invs[i] = mkInvoker()
		if got := d.pushBack(invs[i]); got != int64(i) {
			t.Fatalf("Expected index %d, got %d", i, got)
		}
	}
	for i := range invs {
		if got := d.popFront(); got != invs[i] {
			t.Fatalf("Expected FIFO order across growth at position %d", i)
		}
	}
}

func TestDeque_RemoveFrontByIndexTrims(t *testing.T) {
	var d invokerDeque
	a, b, c := mkInvoker(), mkInvoker(), mkInvoker()
	d.pushBack(a)
	idxB := d.pushBack(b)
	d.pushBack(c)

	d.removeByIndex(idxB)           // nullify middle
	if got := d.removeByIndex(0); got != a { // front: degenerates to pop + trim
		t.Fatalf("Expected front extraction by index")
	}
	if got := d.popFront(); got != c {
		t.Errorf("Expected trim to skip the nullified slot")
	}
}
