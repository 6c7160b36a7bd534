package app

import (
	"crypto/rand"
	"math/big"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// GenerateCode produces a 6-character room code from A-Z0-9. Codes double as
// join tokens, so they are drawn from crypto/rand rather than math/rand.
// Uniqueness against live rooms is the registry's job (regenerate on collision).
func GenerateCode() string {
	return randomString(codeAlphabet, codeLength)
}

// nameSuffix returns the 3 random digits appended to a taken username.
func nameSuffix() string {
	return randomString("0123456789", 3)
}

func randomString(alphabet string, n int) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// The OS entropy source failing is not a recoverable condition.
			panic(err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}
