package picture

import "errors"

// Sentinel errors the HTTP layer maps to response codes. Precondition
// failures happen before any side effect; the rest abort mid-pipeline.
var (
	ErrUnauthenticated = errors.New("picture: caller identity missing")
	ErrNoFile          = errors.New("picture: no file provided")
	ErrFileTooLarge    = errors.New("picture: file exceeds size limit")
	ErrUserNotFound    = errors.New("picture: user not found")
	ErrBadImage        = errors.New("picture: unsupported or corrupt image")
	ErrStorageWrite    = errors.New("picture: storage write failed")
	ErrPersist         = errors.New("picture: user record persist failed")
	ErrNotFound        = errors.New("picture: no profile picture stored")
)
