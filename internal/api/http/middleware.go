package http

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/brainswarm/booking-api/internal/config"
	"github.com/brainswarm/booking-api/internal/observability"
	apperrors "github.com/brainswarm/booking-api/pkg/util/errorutil"
)

// MiddlewareConfig bundles the settings for the global middleware chain.
type MiddlewareConfig struct {
	Logger    *zap.Logger
	Metrics   *observability.Metrics
	Timeout   time.Duration
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
// Order matters: the request logger wraps the error middleware so it sees
// the final status code.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(cfg.Logger))
	if cfg.RateLimit.RPS > 0 {
		app.Use(NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handle)
	}
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				writeError(c, logger, err)
				err = nil
			}
		}()
		return c.Next()
	}
}

// ErrorHandler renders errors raised outside the middleware chain, such as
// body size violations, in the same shape.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		writeError(c, logger, err)
		return nil
	}
}

func writeError(c *fiber.Ctx, logger *zap.Logger, err error) {
	domainErr := apperrors.ToDomainError(err)
	if domainErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(domainErr))
	}

	response := fiber.Map{
		"detail": domainErr.Message,
		"code":   domainErr.Code,
	}
	if len(domainErr.Details) > 0 {
		response["errors"] = domainErr.Details
	}
	if domainErr.HTTPStatus == http.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	_ = c.Status(domainErr.HTTPStatus).JSON(response)
}
