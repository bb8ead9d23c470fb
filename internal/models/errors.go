package models

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrInvalidPassword = errors.New("password incorrect")
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicateHandle = errors.New("handle already exists")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrNotAuthorized   = errors.New("user not authorized")
	ErrAlreadyLiked    = errors.New("user already liked this post")
	ErrNotLiked        = errors.New("user has not yet liked this post")
)
