package credstore

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// sealPhrase derives the sealing key. This is obfuscation at rest, not a
// defense against an attacker with file access: the CLI must be able to
// recover the plaintext secret to authenticate.
const sealPhrase = "jot-credential-seal-v1"

func sealKey() *[32]byte {
	key := sha256.Sum256([]byte(sealPhrase))
	return &key
}

func sealSecret(plain []byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], plain, &nonce, sealKey()), nil
}

func openSecret(sealed []byte) ([]byte, error) {
	if len(sealed) < 24 {
		return nil, fmt.Errorf("sealed secret too short")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, sealKey())
	if !ok {
		return nil, fmt.Errorf("seal verification failed")
	}
	return plain, nil
}
