package domain

import "errors"

var (
	ErrEndpointNotConfigured = errors.New("endpoint url not configured")
	ErrFormNotFound          = errors.New("form file not found")
)
