package errs

import "errors"

var (
	ErrEntityNotFound      error = errors.New("entity not found")
	ErrEntityAlreadyExists error = errors.New("entity already exists")
	ErrValidateBadRequest  error = errors.New("struct validation error")
	ErrUnknownStorage      error = errors.New("unknown storage provider")
)
