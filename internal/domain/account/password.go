package account

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	passwordAlphabet      = "qwertyuiopasdfghjklzxcvbnm1234567890@#$&_."
	DefaultPasswordLength = 8
)

// GeneratePassword returns a random password of length n drawn from
// lowercase letters, digits and @#$&_.
func GeneratePassword(n int) (string, error) {
	if n < DefaultPasswordLength {
		return "", fmt.Errorf("password length %d below minimum %d", n, DefaultPasswordLength)
	}
	limit := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generating password: %w", err)
		}
		out[i] = passwordAlphabet[idx.Int64()]
	}
	return string(out), nil
}
