package auth

import "errors"

// ErrUnauthenticated covers every credential failure on the refresh path:
// unknown secret, already-used secret, expired secret, lost rotation race.
// The cases are deliberately indistinguishable to callers.
var ErrUnauthenticated = errors.New("authentication failed")
