package security

import (
	"encoding/hex"
	"testing"
)

func TestNewStorageKeyShape(t *testing.T) {
	key := NewStorageKey()
	if len(key) != storageKeyBytes*2 {
		t.Fatalf("expected %d chars, got %d", storageKeyBytes*2, len(key))
	}
	if _, err := hex.DecodeString(key); err != nil {
		t.Fatalf("key is not hex: %v", err)
	}
}

func TestNewStorageKeyDoesNotRepeat(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		key := NewStorageKey()
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key after %d draws", i)
		}
		seen[key] = struct{}{}
	}
}
