package repository

import "github.com/pkg/errors"

var (
	ErrNilEntity        = errors.New("Invalid properties")
	ErrNilExpression    = errors.New("Expression not defined.")
	ErrInvalidExpr      = errors.New("Invalid expression")
	ErrEntityNotFound   = errors.New("Entity not found.")
	ErrNoEntitiesFound  = errors.New("No entities found.")
	ErrConnectionFailed = errors.New("connection to database failed")
)
