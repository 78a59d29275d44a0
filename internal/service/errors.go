package service

import "errors"

var (
	ErrTargetRequired = errors.New("user ID is required")
	ErrSelfFollow     = errors.New("cannot follow yourself")
	ErrUserNotFound   = errors.New("user not found")
	ErrNotAnImage     = errors.New("file must be an image")
	ErrFileTooLarge   = errors.New("file size must be less than 5MB")
)
