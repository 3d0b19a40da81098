package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/fjod/go_cart/storefront/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VisitorCookie scopes the cart of a signed-out visitor.
const VisitorCookie = "storefront_visitor"

const visitorCookieMaxAge = 30 * 24 * 60 * 60

type ctxKey int

const modeKey ctxKey = iota

func withMode(ctx context.Context, mode domain.Mode) context.Context {
	return context.WithValue(ctx, modeKey, mode)
}

// ModeFromContext returns the cart mode resolved by IdentityMiddleware.
func ModeFromContext(ctx context.Context) (domain.Mode, bool) {
	mode, ok := ctx.Value(modeKey).(domain.Mode)
	return mode, ok
}

// IdentityMiddleware resolves the cart mode of a request. A bearer token
// selects the user's remote cart; without one the visitor cookie selects an
// anonymous cart, and a new visitor gets a fresh cookie.
func IdentityMiddleware(v *identity.Verifier, secureCookies bool, log *zap.Logger) func(http.Handler) http.Handler {
	log = logger.OrNop(log)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get("Authorization"); header != "" {
				parts := strings.Fields(header)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
					respondError(log, w, http.StatusUnauthorized, "unauthenticated", "authorization header must be 'Bearer <token>'")
					return
				}
				userID, err := v.Parse(parts[1])
				if err != nil {
					log.Debug("rejected bearer token", zap.Error(err))
					respondError(log, w, http.StatusUnauthorized, "unauthenticated", "token is invalid")
					return
				}
				next.ServeHTTP(w, r.WithContext(withMode(r.Context(), domain.Authenticated(userID))))
				return
			}

			visitor := ""
			if c, err := r.Cookie(VisitorCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					visitor = c.Value
				}
			}
			if visitor == "" {
				visitor = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    visitor,
					Path:     "/",
					MaxAge:   visitorCookieMaxAge,
					HttpOnly: true,
					Secure:   secureCookies,
					SameSite: http.SameSiteLaxMode,
				})
			}
			mode := domain.AnonymousIn(domain.DefaultNamespace + ":" + visitor)
			next.ServeHTTP(w, r.WithContext(withMode(r.Context(), mode)))
		})
	}
}

// RequestLogger logs one line per request with the chi request id.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	log = logger.OrNop(log)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// RequestMetrics counts requests by route pattern and status.
func RequestMetrics(m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.APIRequestsTotal.WithLabelValues("http", route, http.StatusText(status)).Inc()
		})
	}
}
