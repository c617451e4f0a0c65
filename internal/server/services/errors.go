package services

import "errors"

// ErrInvalidChange is returned for a pushed record without collection or id.
var ErrInvalidChange = errors.New("invalid change")
