package requestdata

import (
	"context"

	"github.com/google/uuid"

	types "github.com/tatarby/backend/internal/domain"
)

type requestDataKey struct{}

// RequestData carries the authenticated principal for the lifetime of a
// request. It is attached by the auth middleware and read by services.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	User        *types.User
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
