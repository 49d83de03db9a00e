package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/rehablink-io/Rehablink/internal/middleware"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/serializer"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
)

// currentUser returns the authenticated user placed in context by
// middleware.IdentityAuth.
func currentUser(c *gin.Context) *model.User {
	u, _ := c.MustGet(middleware.CtxUser).(*model.User)
	return u
}

// respondErr maps service sentinel errors onto the HTTP envelope.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrStaleFrame):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(err.Error(), err))
	case errors.Is(err, service.ErrConflict) ||
		errors.Is(err, service.ErrInvalidTransition) ||
		errors.Is(err, service.ErrSessionNotActive):
		c.JSON(http.StatusConflict, serializer.ConflictErr(err.Error(), err))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(err.Error()))
	default:
		resp := serializer.TrackedErrorResponse{Response: serializer.DBErr("", err)}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			resp.TraceID = sc.TraceID().String()
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}
