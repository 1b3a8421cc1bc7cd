package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/treinoapp/backend/internal/auth"
	"github.com/treinoapp/backend/internal/telemetry/tracing"
	"github.com/treinoapp/backend/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type AuthMiddlewareHandler struct {
	tokenChecker auth.TokenChecker
	allowedPaths map[string]bool
	// paths under /treinos/ that still require a valid session;
	// every other /treinos/ subpath is an open workout read
	protectedTreinoPaths    map[string]bool
	protectedTreinoPrefixes []string
}

func NewAuthMiddlewareHandler(tokenChecker auth.TokenChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		tokenChecker: tokenChecker,
		allowedPaths: map[string]bool{
			"/":         true,
			"/cadastro": true,
			"/login":    true,

			// exercise catalog, open reads:
			"/exercicios": true,

			// workout listings, open reads:
			"/treinos":             true,
			"/treinos/pesquisa":    true,
			"/treinos/intensidade": true,
		},
		protectedTreinoPaths: map[string]bool{
			"/treinos/favoritar":    true,
			"/treinos/desfavoritar": true,
			"/treinos/favoritos":    true,
			"/treinos/finalizar":    true,
			"/treinos/finalizados":  true,
			"/treinos/frequencia":   true,
		},
		protectedTreinoPrefixes: []string{
			"/treinos/editar/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}

	// workout detail by id is an open read, but the management
	// subpaths stay guarded
	if strings.HasPrefix(path, "/treinos/") {
		if h.protectedTreinoPaths[path] {
			return false
		}
		for _, prefix := range h.protectedTreinoPrefixes {
			if strings.HasPrefix(path, prefix) {
				return false
			}
		}
		return true
	}

	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := bearerToken(r)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			userID, err := h.tokenChecker.UserID(ctx, authToken)
			if err != nil {
				if !errors.Is(err, auth.ErrNotLoggedIn) {
					log.Errorf("[failed session check] => %s: %s", r.URL.Path, err)
					span.RecordError(err)
				} else {
					log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				}
				pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithUserID(ctx, userID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
