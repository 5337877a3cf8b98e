package ratelimit

import "testing"

func TestAllowWithinBurst(t *testing.T) {
	kl := New(1, 3)

	for i := 0; i < 3; i++ {
		if !kl.Allow("alice") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if kl.Allow("alice") {
		t.Error("request beyond burst should be denied")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	kl := New(1, 1)

	if !kl.Allow("alice") {
		t.Fatal("first request for alice should be allowed")
	}
	if kl.Allow("alice") {
		t.Error("second request for alice should be denied")
	}
	if !kl.Allow("bob") {
		t.Error("bob has a separate bucket and should be allowed")
	}
}
