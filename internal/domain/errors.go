package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrReportNotFound     = errors.New("import report not found")
	ErrUnrecognizedLine   = errors.New("unrecognized import line")
)
