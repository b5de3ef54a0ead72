package catalogmanager

import (
	"github.com/openmerce/catalogsrv/pkg/apperrors"
)

var (
	ErrCatalogError              apperrors.Error = apperrors.New("error in processing catalog")
	ErrCombinationNotFound       apperrors.Error = ErrCatalogError.New("combination not found")
	ErrProductNotFound           apperrors.Error = ErrCatalogError.New("product not found")
	ErrValidation                apperrors.Error = ErrCatalogError.New("combination validation failed")
	ErrUnableToUpdateCombination apperrors.Error = ErrCatalogError.New("unable to update combination")
	ErrDeleteFailed              apperrors.Error = ErrCatalogError.New("unable to delete combination")
	ErrBulkDeleteFailed          apperrors.Error = ErrCatalogError.New("bulk combination delete failed")
	ErrDefaultResolution         apperrors.Error = ErrCatalogError.New("unable to resolve default combination")
)
