package vfs

import "github.com/mwantia/kvfs/data"

// Registry errors, re-exported so callers need not import data.
var (
	ErrNotMounted     = data.ErrNotMounted
	ErrAlreadyMounted = data.ErrAlreadyMounted
	ErrInvalidHost    = data.ErrInvalidHost
	ErrMountBusy      = data.ErrMountBusy
)
