package handler

import (
	"net/http"

	"library-loan-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type BaseHandler struct {
	logger *logrus.Logger
}

func NewBaseHandler(logger *logrus.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

func (h *BaseHandler) logRequest(c echo.Context, operation string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"operation":  operation,
		"method":     c.Request().Method,
		"path":       c.Request().URL.Path,
		"ip":         c.RealIP(),
		"user_agent": c.Request().UserAgent(),
	})
}

// respondError пишет ответ с ошибкой: доменные ошибки по таблице, остальное - 500.
func (h *BaseHandler) respondError(c echo.Context, logEntry *logrus.Entry, err error, message string) error {
	if httpErr, exists := domain.ToHTTPError(err); exists {
		status := getHTTPStatusCode(err)
		if status >= http.StatusInternalServerError {
			logEntry.WithError(err).Error(message)
		} else {
			logEntry.WithError(err).Warn(message)
		}
		return c.JSON(status, toAPIErrorResponse(httpErr))
	}

	logEntry.WithError(err).Error(message)
	return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
}
