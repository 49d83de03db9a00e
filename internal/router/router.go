package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/config"
	"github.com/rehablink-io/Rehablink/internal/middleware"
	"github.com/rehablink-io/Rehablink/internal/modules/handler"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/serializer"
	"github.com/rehablink-io/Rehablink/internal/telemetry"
	"github.com/rehablink-io/Rehablink/internal/ws"
)

type RouterDeps struct {
	Config              *config.Config
	DB                  *gorm.DB
	Log                 *zap.Logger
	RelationshipHandler *handler.RelationshipHandler
	SessionHandler      *handler.SessionHandler
	NotificationHandler *handler.NotificationHandler
	ActivityHandler     *handler.ActivityHandler
	PresenceHandler     *handler.PresenceHandler
	Gateway             *ws.Gateway
}

func NewRouter(d RouterDeps) *gin.Engine {
	handler.RegisterValidations()

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.IdentityAuth(d.DB)

	// real-time gateway
	r.GET("/ws", auth, d.Gateway.Handle)

	v1 := r.Group("/api/v1")
	{
		v1.Use(auth)

		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		patient := v1.Group("/patient")
		{
			patient.Use(middleware.RequireRole(model.RolePatient))
			patient.POST("/connection", d.RelationshipHandler.RequestConnection)
			patient.GET("/connection", d.RelationshipHandler.ConnectionStatus)
			patient.DELETE("/connection", d.RelationshipHandler.Disconnect)
			patient.GET("/clinicians", d.RelationshipHandler.ListClinicians)
		}

		clinician := v1.Group("/clinician")
		{
			clinician.Use(middleware.RequireRole(model.RoleClinician))
			clinician.GET("/patients", d.RelationshipHandler.ListPatients)
			clinician.POST("/patients", d.RelationshipHandler.AssignPatient)
			clinician.GET("/patients/:id", d.RelationshipHandler.GetPatient)
			clinician.DELETE("/patients/:id", d.RelationshipHandler.RemovePatient)
			clinician.GET("/patients/:id/sessions", d.SessionHandler.ListForPatient)
			clinician.POST("/patients/:id/recommendations", d.RelationshipHandler.SendRecommendation)
			clinician.PUT("/patients/:id/settings", d.RelationshipHandler.UpdateSettings)
			clinician.GET("/requests", d.RelationshipHandler.ListRequests)
			clinician.PUT("/requests/:patient_id", d.RelationshipHandler.UpdateStatus)
		}

		session := v1.Group("/session")
		{
			session.GET("", d.SessionHandler.List)
			session.POST("", middleware.RequireRole(model.RolePatient), d.SessionHandler.Start)
			session.GET("/:id", d.SessionHandler.Get)
			session.POST("/:id/frames", d.SessionHandler.IngestFrame)
			session.POST("/:id/end", d.SessionHandler.End)
			session.POST("/:id/cancel", d.SessionHandler.Cancel)
			session.POST("/:id/pause", d.SessionHandler.Pause)
			session.POST("/:id/resume", d.SessionHandler.Resume)
			session.POST("/:id/video", d.SessionHandler.UploadVideo)
		}

		notification := v1.Group("/notification")
		{
			notification.GET("", d.NotificationHandler.List)
			notification.POST("/broadcast", d.NotificationHandler.Broadcast)
			notification.GET("/unread_count", d.NotificationHandler.UnreadCount)
			notification.GET("/stats", d.NotificationHandler.Stats)
			notification.PUT("/read", d.NotificationHandler.MarkRead)
			notification.PUT("/:id/read", d.NotificationHandler.MarkOneRead)
			notification.PUT("/:id/archive", d.NotificationHandler.Archive)
			notification.DELETE("/:id", d.NotificationHandler.Delete)
		}

		activity := v1.Group("/activity")
		{
			activity.GET("", d.ActivityHandler.Feed)
			activity.GET("/recent", d.ActivityHandler.Recent)
			activity.GET("/stats", d.ActivityHandler.Stats)
			activity.PUT("/:id/read", d.ActivityHandler.MarkRead)
			activity.PUT("/:id/archive", d.ActivityHandler.Archive)
		}

		presence := v1.Group("/presence")
		{
			presence.POST("/connect", d.PresenceHandler.Connect)
			presence.POST("/disconnect", d.PresenceHandler.Disconnect)
			presence.PUT("/status", d.PresenceHandler.SetStatus)
		}
	}

	return r
}
