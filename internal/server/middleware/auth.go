package middleware

import (
	"strings"

	"github.com/legalmind/backend/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware requires a valid bearer token and populates the request
// user. The master API key acts as a configured service account.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := userFromRequest(c)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.Unauthorized("Not authorized to access this route")
		}

		c.(*AppContext).User = user
		return next(c)
	}
}

// OptionalAuthMiddleware populates the request user when a token is
// present but lets anonymous requests through. Read paths use it so the
// public/private visibility rule can be applied per graph.
func OptionalAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := userFromRequest(c)
		if err == nil && user != nil {
			c.(*AppContext).User = user
		}
		return next(c)
	}
}

func userFromRequest(c echo.Context) (*AppUser, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, nil
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	app := c.(*AppContext).App

	// Master API Key bypass
	if app.MasterAPIKey != "" && app.MasterUserID != "" && token == app.MasterAPIKey {
		return &AppUser{
			UserID: app.MasterUserID,
			Role:   app.MasterUserRole,
		}, nil
	}

	k := *app.Key
	parsed, err := jwt.Parse(token, k.Keyfunc)
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthorized("Not authorized to access this route")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthorized("Not authorized to access this route")
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return nil, apperr.Unauthorized("Not authorized to access this route")
	}

	role := "user"
	if roleClaim, ok := claims["role"].(string); ok {
		role = roleClaim
	}

	return &AppUser{
		UserID: userID,
		Role:   role,
	}, nil
}
