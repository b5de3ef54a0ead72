package dberror

import (
	"github.com/openmerce/catalogsrv/pkg/apperrors"
)

var (
	ErrDatabase     apperrors.Error = apperrors.New("db error")
	ErrNotFound     apperrors.Error = ErrDatabase.New("not found")
	ErrInvalidInput apperrors.Error = ErrDatabase.New("invalid input")
)
