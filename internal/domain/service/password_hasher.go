// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Repeated calls
	// with the same plaintext yield different hashes. It fails only on
	// malformed input (empty plaintext, or plaintext beyond the algorithm's
	// length limit).
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash using a
	// timing-safe comparison. A mismatch returns (false, nil); an error is
	// returned only for a structurally invalid stored hash, which signals
	// data corruption rather than a wrong password.
	Check(password, hash string) (bool, error)
}
