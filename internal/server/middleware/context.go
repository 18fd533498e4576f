package middleware

import (
	"github.com/MicahParks/keyfunc/v3"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/legalmind/backend/pkg/ai"
	"github.com/legalmind/backend/pkg/loader"
)

// AppUser is the authenticated requester, populated by AuthMiddleware.
type AppUser struct {
	UserID string
	Role   string
}

// App bundles every shared dependency the handlers need.
type App struct {
	DBConn         *pgxpool.Pool
	Queue          *amqp091.Channel
	Key            *keyfunc.Keyfunc
	S3             *s3.Client
	AiClient       ai.ChatClient
	Docs           *loader.Loader
	MasterAPIKey   string
	MasterUserID   string
	MasterUserRole string
}

// AppContext wraps the echo context with the app dependencies and, after
// auth, the requesting user.
type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
