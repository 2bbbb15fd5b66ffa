package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrSessionEnded = errors.New("session ended")
var ErrBackendUnreachable = errors.New("could not reach server")
var ErrIssueNotFound = errors.New("issue not found")
var ErrUserExists = errors.New("user already exists")
