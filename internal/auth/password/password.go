package password

import "github.com/alexedwards/argon2id"

// Hasher wraps argon2id hashing so the rest of the code never sees
// plaintext handling details.
type Hasher struct {
	params *argon2id.Params
}

// NewDefault returns a Hasher with the library's default parameters.
func NewDefault() *Hasher {
	return &Hasher{params: argon2id.DefaultParams}
}

// Hash returns the encoded $argon2id$... string suitable for storage.
func (h *Hasher) Hash(plain string) (string, error) {
	return argon2id.CreateHash(plain, h.params)
}

// Verify reports whether plain matches the stored encoded hash.
func (h *Hasher) Verify(plain, encoded string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encoded)
}
