package models

import "errors"

// Error constants for catalogue operations
var (
	ErrRubricNotFound    = errors.New("rubric not found")
	ErrSearchUnavailable = errors.New("search collaborator unavailable")
)
