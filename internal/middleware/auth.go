package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/serializer"
)

// Context keys set by IdentityAuth.
const (
	CtxUser = "user"
	CtxRole = "role"
)

// IdentityAuth authenticates requests from the upstream gateway, which has
// already verified credentials and forwards the caller's identity in
// X-User-ID / X-User-Role. The user row must exist and the declared role must
// match it. Sets user_id on the current span for telemetry filtering.
func IdentityAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ctx, authSpan := otel.Tracer("middleware").Start(ctx, "identity_auth",
			trace.WithAttributes(attribute.String("middleware", "identity_auth")))

		userID, err := uuid.Parse(c.GetHeader("X-User-ID"))
		if err != nil {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		role := model.Role(c.GetHeader("X-User-Role"))
		if !role.Valid() {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		var user model.User
		if err := db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				authSpan.SetAttributes(attribute.Bool("authenticated", false))
				authSpan.End()
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
			authSpan.RecordError(err)
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		if user.Role != role {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		rootSpan := trace.SpanFromContext(c.Request.Context())
		if rootSpan.SpanContext().IsValid() {
			rootSpan.SetAttributes(attribute.String("user_id", user.ID.String()))
		}
		authSpan.SetAttributes(
			attribute.String("user_id", user.ID.String()),
			attribute.Bool("authenticated", true),
		)
		authSpan.End()

		c.Set(CtxUser, &user)
		c.Set(CtxRole, user.Role)
		c.Next()
	}
}

// RequireRole guards a route group to one role.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, ok := c.MustGet(CtxRole).(model.Role); !ok || got != role {
			c.AbortWithStatusJSON(http.StatusForbidden,
				serializer.ForbiddenErr("this endpoint requires the "+string(role)+" role"))
			return
		}
		c.Next()
	}
}
