package middleware

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/de-tools/fleet-atlas/pkg/handlers/response"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/session"
)

// RequireUser resolves the acting user from the X-User-ID header.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		userID, err := strconv.ParseInt(req.Header.Get(session.Header), 10, 64)
		if err != nil || userID <= 0 {
			response.WriteError(w, req, domain.NewValidationError(session.Header, "must be a positive integer"))
			return
		}

		ctx := session.WithUser(req.Context(), userID)
		logger := zerolog.Ctx(ctx).With().Int64("user_id", userID).Logger()
		next.ServeHTTP(w, req.WithContext(logger.WithContext(ctx)))
	})
}
