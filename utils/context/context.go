package context

import (
	"context"

	"github.com/muhammadheryan/stock-coordinator/constant"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func GetActorID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.ActorIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
