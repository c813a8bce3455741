package storage

import (
	"errors"

	"github.com/Novip1906/join/internal/firebase"
)

var (
	// ErrNotFound is shared with the Firebase client so callers can check one
	// sentinel regardless of backend.
	ErrNotFound    = firebase.ErrNotFound
	ErrRootWrite   = errors.New("writes must target a collection path")
	ErrNotAnObject = errors.New("patch value must be a JSON object")
)
