package service_test

import (
	"testing"

	"github.com/budgetbeyond/budget-beyond/internal/service"
)

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	// Negligible refill so the burst capacity is all we get.
	tb := service.NewTokenBucket(0.0001, 5)

	for i := 0; i < 5; i++ {
		if !tb.Allow("1.2.3.4") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if tb.Allow("1.2.3.4") {
		t.Fatal("request beyond burst capacity should be denied")
	}
}

func TestTokenBucket_KeysAreIndependent(t *testing.T) {
	tb := service.NewTokenBucket(0.0001, 1)

	if !tb.Allow("1.2.3.4") {
		t.Fatal("first key should be allowed")
	}
	if tb.Allow("1.2.3.4") {
		t.Fatal("first key should now be exhausted")
	}
	if !tb.Allow("5.6.7.8") {
		t.Fatal("a different key must have its own bucket")
	}
}
