package context

import (
	"context"

	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func GetRole(ctx context.Context) (constant.Role, bool) {
	v := ctx.Value(constant.RoleKey)
	if v == nil {
		return "", false
	}
	role, ok := v.(constant.Role)
	return role, ok
}

// GetPrincipal returns the authenticated principal embedded by the auth
// middleware, or false when the request is unauthenticated.
func GetPrincipal(ctx context.Context) (model.Principal, bool) {
	id, ok := GetUserID(ctx)
	if !ok {
		return model.Principal{}, false
	}
	role, ok := GetRole(ctx)
	if !ok {
		return model.Principal{}, false
	}
	return model.Principal{UserID: id, Role: role}, true
}

func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	ctx = context.WithValue(ctx, constant.UserIDKey, p.UserID)
	return context.WithValue(ctx, constant.RoleKey, p.Role)
}
