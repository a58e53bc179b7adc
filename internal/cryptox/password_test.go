package cryptox

import (
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost, 2)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("hash must not equal the plaintext password")
	}

	if !h.Verify("secret123", hash) {
		t.Fatalf("expected correct password to verify")
	}
	if h.Verify("secret124", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestPasswordHasher_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost, 2)

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different hashes for the same password (per-call salt)")
	}
}

func TestPasswordHasher_MalformedHashFailsClosed(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost, 1)

	for _, malformed := range []string{"", "not-a-bcrypt-hash", "$2a$xx$broken"} {
		if h.Verify("anything", malformed) {
			t.Fatalf("malformed hash %q must never verify", malformed)
		}
	}
}

func TestPasswordHasher_ConcurrentUse(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost, 2)

	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.Hash("pw"); err != nil {
				t.Errorf("Hash error: %v", err)
			}
			if !h.Verify("pw", hash) {
				t.Errorf("Verify failed under concurrency")
			}
		}()
	}
	wg.Wait()
}

func TestNewPasswordHasher_OutOfRangeInputs(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(99, 0)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", h.cost)
	}
	if cap(h.slots) != 1 {
		t.Fatalf("expected a single slot, got %d", cap(h.slots))
	}
}
