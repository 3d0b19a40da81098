package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/fjod/go_cart/storefront/internal/platform/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// VisitorHeader carries the visitor id of a signed-out caller.
const VisitorHeader = "x-visitor-id"

type ctxKey int

const modeKey ctxKey = iota

// ModeFromContext returns the cart mode resolved by IdentityInterceptor.
func ModeFromContext(ctx context.Context) (domain.Mode, bool) {
	mode, ok := ctx.Value(modeKey).(domain.Mode)
	return mode, ok
}

// IdentityInterceptor resolves the cart mode from the "authorization" bearer
// token, falling back to the visitor id for anonymous carts.
func IdentityInterceptor(v *identity.Verifier, log *zap.Logger) grpc.UnaryServerInterceptor {
	log = logger.OrNop(log)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "metadata is not provided")
		}

		if auth := md.Get("authorization"); len(auth) > 0 {
			parts := strings.Fields(auth[0])
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return nil, status.Error(codes.Unauthenticated, "authorization token format is invalid, expected 'Bearer <token>'")
			}
			userID, err := v.Parse(parts[1])
			if err != nil {
				log.Debug("rejected bearer token", zap.String("method", info.FullMethod), zap.Error(err))
				return nil, status.Error(codes.Unauthenticated, "token is invalid")
			}
			return handler(context.WithValue(ctx, modeKey, domain.Authenticated(userID)), req)
		}

		visitor := md.Get(VisitorHeader)
		if len(visitor) == 0 {
			return nil, status.Error(codes.Unauthenticated, "authorization token or visitor id is required")
		}
		if _, err := uuid.Parse(visitor[0]); err != nil {
			return nil, status.Error(codes.InvalidArgument, "visitor id must be a UUID")
		}
		mode := domain.AnonymousIn(domain.DefaultNamespace + ":" + visitor[0])
		return handler(context.WithValue(ctx, modeKey, mode), req)
	}
}

func LoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	log = logger.OrNop(log)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			log.Warn("gRPC request failed", append(fields, zap.Error(err))...)
		} else {
			log.Info("gRPC request handled", fields...)
		}
		return resp, err
	}
}

// MetricsInterceptor counts requests by method and status code. A nil m
// disables counting.
func MetricsInterceptor(m *metrics.Manager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if m != nil {
			m.APIRequestsTotal.WithLabelValues("grpc", info.FullMethod, status.Code(err).String()).Inc()
		}
		return resp, err
	}
}
