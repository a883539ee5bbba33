package security

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

const storageKeyBytes = 32

// NewStorageKey returns a random hex token used to address one blob in the
// object store. Keys carry no user-derived component, so knowing one user's
// key reveals nothing about anyone else's.
func NewStorageKey() string {
	b := make([]byte, storageKeyBytes)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		// the OS entropy source is gone; nothing sensible to do
		panic(err)
	}
	return hex.EncodeToString(b)
}
