package model

import "errors"

var (
	ErrTokenRevoked  = errors.New("auth token revoked")
	ErrTokenExpired  = errors.New("auth token expired")
	ErrTokenMismatch = errors.New("auth token mismatch")
)
