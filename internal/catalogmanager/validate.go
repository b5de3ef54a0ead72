package catalogmanager

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/openmerce/catalogsrv/internal/db/models"
)

// Validator is consulted before any combination field update is persisted.
// A non-nil error rejects the entity and persistence is never attempted.
type Validator interface {
	ValidateCombination(ctx context.Context, c *models.Combination) error
}

type structValidator struct {
	validate *validator.Validate
}

func newStructValidator() *structValidator {
	return &structValidator{validate: validator.New()}
}

func (s *structValidator) ValidateCombination(_ context.Context, c *models.Combination) error {
	return s.validate.Struct(c)
}

// combinationValidator is the validator used by UpdateCombination. Tests
// substitute it to exercise rejection paths.
var combinationValidator Validator = newStructValidator()
