package store

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateUser  = errors.New("username already exists")
	ErrEntrySubmitted = errors.New("entry already submitted")
)
