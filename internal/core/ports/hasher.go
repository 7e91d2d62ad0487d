package ports

// PasswordHasher is the one-way credential transform. The digest is opaque;
// the hashing algorithm may be swapped without changing this contract.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
