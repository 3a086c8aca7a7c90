package tokens

import "errors"

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidClaims  = errors.New("invalid claims")
	ErrMissingSubject = errors.New("token has no subject")
)
