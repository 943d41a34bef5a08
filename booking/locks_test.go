package booking

import (
	"testing"
	"time"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock("w1")
	acquired := make(chan struct{})
	go func() {
		u := km.Lock("w1")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock on same key acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Lock never acquired after unlock")
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock("w1")
	defer unlock()

	acquired := make(chan struct{})
	go func() {
		u := km.Lock("w2")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Lock on a different key blocked")
	}
}

func TestKeyedMutexCounter(t *testing.T) {
	km := NewKeyedMutex()
	const n = 50
	counter := 0
	done := make(chan struct{}, n)

	for i := 0; i < n; i++ {
		go func() {
			unlock := km.Lock("w1")
			counter++
			unlock()
			done <- struct{}{}
		}()
	}
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for goroutines")
		}
	}
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
}
