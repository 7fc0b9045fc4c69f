package helpers

import (
	"errors"
	"testing"
)

func TestGenerateSaltUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		s, err := GenerateSalt()
		if err != nil {
			t.Fatalf("GenerateSalt: %v", err)
		}
		if seen[s] {
			t.Fatalf("salt %q generated twice", s)
		}
		seen[s] = true
	}
}

func TestHashPasswordDeterministic(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	h1, err := HashPassword("s3cret-pass", salt)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("s3cret-pass", salt)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("same plaintext and salt produced different hashes")
	}
}

func TestHashPasswordSaltChangesHash(t *testing.T) {
	s1, _ := GenerateSalt()
	s2, _ := GenerateSalt()
	h1, err := HashPassword("s3cret-pass", s1)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("s3cret-pass", s2)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("different salts produced the same hash")
	}
}

func TestVerifyPassword(t *testing.T) {
	salt, _ := GenerateSalt()
	hash, err := HashPassword("correct horse", salt)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := VerifyPassword("correct horse", hash, salt)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatal("matching password reported as mismatch")
	}

	ok, err = VerifyPassword("battery staple", hash, salt)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Fatal("wrong password reported as match")
	}
}

func TestVerifyPasswordMalformedStoredValues(t *testing.T) {
	salt, _ := GenerateSalt()
	hash, _ := HashPassword("pw", salt)

	ok, err := VerifyPassword("pw", "%%%not-base64%%%", salt)
	if ok || !errors.Is(err, ErrMalformedCredential) {
		t.Fatalf("malformed hash: got ok=%v err=%v, want ErrMalformedCredential", ok, err)
	}

	ok, err = VerifyPassword("pw", hash, "%%%not-base64%%%")
	if ok || !errors.Is(err, ErrMalformedCredential) {
		t.Fatalf("malformed salt: got ok=%v err=%v, want ErrMalformedCredential", ok, err)
	}
}
