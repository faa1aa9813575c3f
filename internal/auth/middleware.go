package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "taskmarket/internal/errors"
)

// contextKey is where the middleware stores the authenticated claims.
const contextKey = "user"

// Middleware returns a bearer-token guard for protected routes. Token
// parsing is delegated to the JWT service so that expired tokens get a
// distinct message from malformed or missing ones.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  contextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			resp := apperrors.ErrorResponse{
				Error: "invalid token, authorization denied",
				Code:  "INVALID_TOKEN",
			}
			switch {
			case errors.Is(err, ErrTokenExpired):
				resp = apperrors.ErrorResponse{
					Error: "token expired, please log in again",
					Code:  "TOKEN_EXPIRED",
				}
			case errors.Is(err, echojwt.ErrJWTMissing):
				resp = apperrors.ErrorResponse{
					Error: "authorization denied, no token provided or incorrect format",
					Code:  "NO_TOKEN",
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, resp)
		},
	})
}

// UserFromContext returns the claims attached by Middleware.
func UserFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(contextKey).(*Claims)
	return claims, ok
}
