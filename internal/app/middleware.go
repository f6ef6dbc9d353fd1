package app

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/shopstack-erp/shopstack/internal/platform/httpx"
	"github.com/shopstack-erp/shopstack/internal/shared"
)

// TenantHeader carries the verified tenant id set by the identity proxy in
// front of this service. The service trusts it as a scoping key and never
// authenticates requests itself.
const TenantHeader = "X-Tenant-ID"

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger *slog.Logger
	Config *Config
}

// MiddlewareStack installs the ShopStack middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		SSLRedirect:           cfg.Config != nil && cfg.Config.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	limiter := httprate.Limit(120, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		if tenant := strings.TrimSpace(r.Header.Get(TenantHeader)); tenant != "" {
			return "tenant:" + tenant, nil
		}
		return httprate.KeyByIP(r)
	}))

	requestTimeout := 30 * time.Second
	if cfg.Config != nil && cfg.Config.AppRequestTimeout > 0 {
		requestTimeout = cfg.Config.AppRequestTimeout
	}

	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(requestTimeout),
		secureMiddleware.Handler,
		limiter,
	}
}

// TenantMiddleware resolves the tenant id from the identity proxy header and
// stores it in the request context. Requests without a tenant are rejected.
func TenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant := strings.TrimSpace(r.Header.Get(TenantHeader))
		if tenant == "" {
			httpx.RespondError(w, shared.ErrTenantMissing)
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithTenant(r.Context(), tenant)))
	})
}
