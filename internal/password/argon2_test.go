package password

import (
	"errors"
	"strings"
	"testing"
)

// testConfig keeps hashing cheap in tests while staying above the
// constructor minima.
func testConfig() Config {
	return Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func newTestHasher(t *testing.T) *Argon2 {
	t.Helper()
	h, err := NewArgon2(testConfig())
	if err != nil {
		t.Fatalf("NewArgon2 error: %v", err)
	}
	return h
}

func TestHashVerify_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	enc, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(enc, "$argon2id$v=") {
		t.Fatalf("hash is not PHC-encoded: %q", enc)
	}

	ok, err := h.Verify(enc, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match for the original password")
	}
}

func TestVerify_MismatchIsNotAnError(t *testing.T) {
	h := newTestHasher(t)

	enc, err := h.Hash("right-password!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify(enc, "wrong-password!")
	if err != nil {
		t.Fatalf("mismatch must not surface as an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	h := newTestHasher(t)

	malformed := []string{
		"",
		"plaintext-left-in-column",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$AAAA",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$AAAA",
		"$argon2id$v=19$m=8192,t=1$c2FsdHNhbHRzYWx0c2FsdA$AAAA",
		"$argon2id$v=19$m=8192,t=1,p=1$!notbase64!$AAAA",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$",
	}

	for _, enc := range malformed {
		if _, err := h.Verify(enc, "whatever"); !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("hash %q: expected ErrMalformedHash, got %v", enc, err)
		}
	}
}

func TestHash_EmptyPasswordRejected(t *testing.T) {
	h := newTestHasher(t)
	if _, err := h.Hash(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("same-password-1!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("same-password-1!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must not be identical")
	}
}

func TestNeedsRehash(t *testing.T) {
	h := newTestHasher(t)

	enc, err := h.Hash("some-password-1!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	// Fresh hash matches current parameters.
	needs, err := h.NeedsRehash(enc)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if needs {
		t.Fatalf("fresh hash should not need a rehash")
	}

	// A hasher with different cost parameters flags the same hash.
	stronger := testConfig()
	stronger.Time = 2
	h2, err := NewArgon2(stronger)
	if err != nil {
		t.Fatalf("NewArgon2 error: %v", err)
	}
	needs, err = h2.NeedsRehash(enc)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !needs {
		t.Fatalf("hash with old parameters should need a rehash")
	}

	// The old hash still verifies under the new configuration because the
	// parameters travel inside the hash itself.
	ok, err := h2.Verify(enc, "some-password-1!")
	if err != nil || !ok {
		t.Fatalf("self-describing hash must stay verifiable: ok=%v err=%v", ok, err)
	}
}

func TestNeedsRehash_MalformedHash(t *testing.T) {
	h := newTestHasher(t)
	if _, err := h.NeedsRehash("garbage"); !errors.Is(err, ErrMalformedHash) {
		t.Fatalf("expected ErrMalformedHash, got %v", err)
	}
}

func TestNewArgon2_RejectsWeakConfig(t *testing.T) {
	bad := []Config{
		{Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 8 * 1024, Time: 0, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 8 * 1024, Time: 1, Parallelism: 0, SaltLength: 16, KeyLength: 32},
		{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 8, KeyLength: 32},
		{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 8},
	}
	for _, cfg := range bad {
		if _, err := NewArgon2(cfg); err == nil {
			t.Fatalf("expected config %+v to be rejected", cfg)
		}
	}
}
