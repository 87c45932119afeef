package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher owns the password storage policy of the server.
// It is the only place that knows how credentials are encoded.
//
// Encoded credentials use the PHC string format:
//
//	$argon2id$v=19$m=<memory KiB>,t=<iterations>,p=<threads>$<salt>$<key>
//
// so that Verify can recompute a key with the parameters that produced it
// even after the defaults change.
type PasswordHasher interface {
	// Hash derives a salted argon2id key from password and returns its
	// encoded form. Returns ErrInvalidPassword when the password is blank
	// or longer than MaxPasswordBytes.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded credential.
	// A malformed credential or an invalid password is a non-match.
	Verify(password, encoded string) bool
}
