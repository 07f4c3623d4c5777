package repository

import "errors"

var errDuplicateEmail = errors.New("duplicate email")
