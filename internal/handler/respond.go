package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/middleware"
)

// respondError maps a service error to the API envelope via the central
// kind→status mapping. Internal causes are logged, never sent to clients.
func respondError(c fiber.Ctx, err error) error {
	if apperr.KindOf(err) == apperr.Internal {
		middleware.Logger.Error().Err(err).
			Str("path", c.Path()).
			Msg("internal error")
	}
	return middleware.ErrorResponse(c, apperr.HTTPStatus(err), apperr.ClientMessage(err))
}
