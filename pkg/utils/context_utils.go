package utils

import (
	"context"

	"apparel-erp/pkg/contextkeys"
	apperrors "apparel-erp/pkg/errors"
)

func UserIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

func WorkspaceIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.WorkspaceIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrWorkspaceIDNotFoundInContext
	}
	return id, nil
}

func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.RoleKey).(string)
	return role
}
