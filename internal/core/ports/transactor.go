package ports

import "context"

// Transactor runs fn as one unit of work. Repository calls made with the ctx
// passed to fn take part in the unit; if fn returns an error nothing it wrote
// is committed.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PasswordHasher turns plaintext credentials into stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
