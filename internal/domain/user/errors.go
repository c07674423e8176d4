package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotApproved  = errors.New("account is awaiting administrator approval")
)
