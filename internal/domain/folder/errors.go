package folder

import "errors"

var (
	// ErrFolderNotFound indicates the folder doesn't exist.
	ErrFolderNotFound = errors.New("folder not found")
	// ErrInvalidInput indicates invalid input for folder operations.
	ErrInvalidInput = errors.New("invalid folder input")
)
