package session

import "errors"

// ErrInvalidSession is returned for a token that is missing, unknown, or
// expired. The three cases are deliberately indistinguishable to callers.
var ErrInvalidSession = errors.New("invalid session")
