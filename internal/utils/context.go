package utils

import (
	"context"

	"marketplace-be/internal/auth"
)

type contextKey string

const actorKey contextKey = "actor"

// SetActorContext stores the verified actor (called by auth middleware).
func SetActorContext(ctx context.Context, a auth.Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// GetActorFromContext retrieves the actor safely.
func GetActorFromContext(ctx context.Context) (auth.Actor, bool) {
	a, ok := ctx.Value(actorKey).(auth.Actor)
	return a, ok
}

func GetProfileIDFromContext(ctx context.Context) (uint, bool) {
	a, ok := GetActorFromContext(ctx)
	if !ok {
		return 0, false
	}
	return a.ProfileID, true
}
