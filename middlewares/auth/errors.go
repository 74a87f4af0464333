package auth

import "errors"

var (
	errNoToken       = errors.New("please provide a valid token")
	errForbiddenRole = errors.New("you are not authorized to perform this action")
)
