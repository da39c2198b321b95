package storage

import "errors"

var ErrItemNotFound = errors.New("item not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with the same id already exists")
var ErrVersionConflict = errors.New("document was modified concurrently")

var ErrRoundNotFound = errors.New("round not found in hackathon")
var ErrActiveRoundExists = errors.New("another round is already active")
var ErrRoundNotActive = errors.New("round is not active")
var ErrInvalidRoundStatus = errors.New("invalid round status")
