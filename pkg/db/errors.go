package db

import "errors"

var (
	ErrClosed          = errors.New("kv-store: database is closed")
	ErrNotFound        = errors.New("kv-store: key not found")
	ErrIteratorInvalid = errors.New("kv-store: iterator is not positioned")
)
