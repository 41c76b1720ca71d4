package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrDuplicateLoginID = errors.New("login id already exists")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrSelfVote         = errors.New("cannot vote for own content")
	ErrDispatchFailed   = errors.New("reservation dispatch failed")
	ErrDispatchTimeout  = errors.New("reservation dispatch timed out")
)
