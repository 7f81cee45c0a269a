// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "testing"

type payload struct {
	n int
}

func TestSyncPool_GetPut(t *testing.T) {
	created := 0
	p := NewSyncPool(func() *payload {
		created++
		return new(payload)
	})

	obj := p.Get()
	if obj == nil {
		t.Fatal("Expected a constructed instance")
	}
	obj.n = 7
	p.Put(obj)

	again := p.Get()
	if again == nil {
		t.Fatal("Expected an instance after Put")
	}
	if created < 1 {
		t.Errorf("Expected creator to run at least once, got %d", created)
	}
}

func TestSyncPool_ConcurrentUse(t *testing.T) {
	p := NewSyncPool(func() *payload { return new(payload) })

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 1000; j++ {
				obj := p.Get()
				obj.n = j
				p.Put(obj)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
