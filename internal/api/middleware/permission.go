package middleware

import (
	"net/http"

	"github.com/focusflowhq/backend/internal/access"
	"github.com/focusflowhq/backend/internal/api/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RequirePermission guards a route with the access resolver. The resource id
// is read from the named URL parameter; denials map to 403, a dangling id to
// 404, and resolver infrastructure failures to 500.
func RequirePermission(resolver *access.Resolver, resource access.ResourceType, param string, action access.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				response.Unauthorized(w, "unauthorized")
				return
			}

			resourceID, err := uuid.Parse(chi.URLParam(r, param))
			if err != nil {
				response.BadRequest(w, "invalid "+param)
				return
			}

			if err := resolver.Authorize(r.Context(), userID, resource, resourceID, action); err != nil {
				response.FromError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
