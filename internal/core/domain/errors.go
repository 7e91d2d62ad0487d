package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrMissingSubject = errors.New("token missing subject")
var ErrForbidden = errors.New("access forbidden")
var ErrSelfDelete = errors.New("cannot delete own account")
