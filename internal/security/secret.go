package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const secretTokenBytes = 32

// SecretToken is a single-use token mailed to an account holder. Only the
// digest is persisted; the plaintext leaves the process exactly once.
type SecretToken struct {
	Plaintext string
	Digest    string
	ExpiresAt time.Time
}

func IssueSecretToken(now time.Time, window time.Duration) (SecretToken, error) {
	buf := make([]byte, secretTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return SecretToken{}, fmt.Errorf("generate secret token: %w", err)
	}

	plaintext := hex.EncodeToString(buf)
	return SecretToken{
		Plaintext: plaintext,
		Digest:    DigestSecretToken(plaintext),
		ExpiresAt: now.Add(window),
	}, nil
}

// DigestSecretToken is deterministic and unsalted so a presented token can be
// matched by equality lookup.
func DigestSecretToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
