package service

import "errors"

// ErrLineTooLong indicates an input line longer than the configured limit.
var ErrLineTooLong = errors.New("getline: input line exceeds maximum length")
