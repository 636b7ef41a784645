package utils

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoComputesOnceUntilInvalidated(t *testing.T) {
	m := NewMemo[int]()
	var calls int32
	compute := func() (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	for i := 0; i < 3; i++ {
		v, err := m.Get("upwork-extract.csv", compute)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if v != 1 {
			t.Fatalf("Get() = %d, want 1", v)
		}
	}

	m.Invalidate("upwork-extract.csv")
	v, err := m.Get("upwork-extract.csv", compute)
	if err != nil {
		t.Fatalf("Get() after Invalidate error = %v", err)
	}
	if v != 2 {
		t.Fatalf("Get() after Invalidate = %d, want 2", v)
	}
}

func TestMemoSetReplacesEntry(t *testing.T) {
	m := NewMemo[string]()
	if _, err := m.Get("k", func() (string, error) { return "old", nil }); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	m.Set("k", "new")
	v, err := m.Get("k", func() (string, error) {
		t.Fatal("Get() recomputed after Set")
		return "", nil
	})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if v != "new" {
		t.Fatalf("Get() = %q, want new", v)
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestMemoSharesConcurrentMisses(t *testing.T) {
	m := NewMemo[string]()
	var calls int32
	release := make(chan struct{})
	compute := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "dataset", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Get("k", compute); err != nil {
				t.Errorf("Get() error = %v", err)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("compute calls = %d, want 1", got)
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestMemoDoesNotCacheErrors(t *testing.T) {
	m := NewMemo[int]()
	boom := errors.New("boom")

	if _, err := m.Get("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("Get() err = %v, want boom", err)
	}
	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after failed compute", m.Len())
	}

	v, err := m.Get("k", func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Fatalf("Get() = %d, %v, want 7, nil", v, err)
	}

	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", m.Len())
	}
}

func TestRateLimiterAllow(t *testing.T) {
	r := NewRateLimiter(1000)
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	if !r.Allow() {
		t.Fatal("first Allow() = false, want true")
	}
	current = current.Add(400 * time.Millisecond)
	if r.Allow() {
		t.Fatal("Allow() inside window = true, want false")
	}
	if got := r.RetryAfter(); got != 600*time.Millisecond {
		t.Fatalf("RetryAfter() = %v, want 600ms", got)
	}
	current = current.Add(600 * time.Millisecond)
	if !r.Allow() {
		t.Fatal("Allow() after window = false, want true")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	logger := NewNopLogger()
	attempts := 0
	err := RetryWithBackoff(3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("not ready")
		}
		return nil
	}, logger)
	if err != nil {
		t.Fatalf("RetryWithBackoff() error = %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}

	boom := errors.New("boom")
	err = RetryWithBackoff(2, time.Millisecond, func() error { return boom }, logger)
	if !errors.Is(err, boom) {
		t.Fatalf("RetryWithBackoff() err = %v, want wrapping boom", err)
	}
}
