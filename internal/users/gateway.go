package users

import "context"

// User is the slice of the user record this service is allowed to touch:
// the identity and the storage key of the current profile picture, if any.
type User struct {
	ID             string
	ProfilePicture *string
}

// HasPicture reports whether a picture reference is set.
func (u *User) HasPicture() bool {
	return u != nil && u.ProfilePicture != nil && *u.ProfilePicture != ""
}

// Gateway reads and writes the stored picture reference. User records are
// created and deleted elsewhere; this side never constructs them.
type Gateway interface {
	// FindByID returns (nil, nil) when the user does not exist.
	FindByID(ctx context.Context, id string) (*User, error)
	Save(ctx context.Context, u *User) error
}
