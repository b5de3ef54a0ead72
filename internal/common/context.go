// Description: This file contains the context package which is used to set and retrieve data from the context.
package common

import (
	"context"

	"github.com/google/uuid"
)

// ctxOperationIdKeyType represents the key type for the operation ID in the context.
type ctxOperationIdKeyType string

const ctxOperationIdKey ctxOperationIdKeyType = "CatalogOperationId"

// SetOperationIdInContext sets the operation ID in the provided context.
func SetOperationIdInContext(ctx context.Context, operationId string) context.Context {
	return context.WithValue(ctx, ctxOperationIdKey, operationId)
}

// OperationIdFromContext retrieves the operation ID from the provided context.
func OperationIdFromContext(ctx context.Context) string {
	if operationId, ok := ctx.Value(ctxOperationIdKey).(string); ok {
		return operationId
	}
	return ""
}

// EnsureOperationId returns the context unchanged when an operation ID is
// already present, otherwise tags it with a fresh one. The returned string is
// the effective operation ID.
func EnsureOperationId(ctx context.Context) (context.Context, string) {
	if id := OperationIdFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.New().String()
	return SetOperationIdInContext(ctx, id), id
}
