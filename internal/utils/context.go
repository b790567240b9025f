package utils

import (
	"context"
)

type contextKey string

const ContextPrincipalKey contextKey = "principal"

func GetPrincipalFromContext(ctx context.Context) (string, bool) {
	principal := ctx.Value(ContextPrincipalKey)
	principalStr, ok := principal.(string)
	return principalStr, ok
}
