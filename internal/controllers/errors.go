package controllers

import "errors"

// Ошибки.
var (
	ErrInternal      = errors.New("internal error")
	ErrInvalidBody   = errors.New("invalid request body")
	ErrInvalidLinkID = errors.New("invalid link id")

	// ErrListLinks показывается пользователю при сбое загрузки списка.
	ErrListLinks = errors.New("Failed to load links. Please try again.") //nolint:stylecheck,revive
)
