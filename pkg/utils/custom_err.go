package utils

import "errors"

var (
	ErrDatabaseError        = errors.New("database error")
	ErrFunnelNotFound       = errors.New("funnel not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrPageNotFound         = errors.New("page not found")
	ErrComponentNotFound    = errors.New("component not found")
	ErrLastPage             = errors.New("a funnel must keep at least one page")
	ErrInvalidPageIndex     = errors.New("invalid page index")
	ErrUnknownPageType      = errors.New("unknown page type")
	ErrUnknownComponentType = errors.New("unknown component type")
	ErrInvalidPage          = errors.New("invalid page parameter")
	ErrInvalidPageSize      = errors.New("invalid page size parameter")
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyExists   = errors.New("email already registered")
)
