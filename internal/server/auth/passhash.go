// Package auth implements credential hashing and signed-token handling for
// the auth service.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword produces the stored credential digest: the hex SHA-256 of the
// password concatenated with a suffix (the username) and the process-wide
// salt from configuration. The digest is deterministic so credential checks
// reduce to an equality lookup.
//
// NOTE: a single global salt is a deployment-time weakness kept for
// compatibility with existing stored digests; see DESIGN.md.
func HashPassword(password, suffix, salt string) string {
	sum := sha256.Sum256([]byte(password + suffix + salt))
	return hex.EncodeToString(sum[:])
}
