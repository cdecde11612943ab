package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tuiter/internal/service"
)

// NewRouter configura el router de Gin con middlewares y las rutas
// del subsistema de mensajería.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	messageH *MessageHandler,
	groupH *GroupHandler,
	groupMessageH *GroupMessageHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	auth := CallerIDMiddleware(jwtSvc)

	users := r.Group("/users")
	users.POST("/:uid/messages/:rid", auth, messageH.Send)
	users.GET("/:uid/messages", messageH.ListSent)
	users.GET("/:uid/messages/:rid", messageH.ListBetween)
	users.GET("/:uid/received-messages", messageH.ListReceived)
	users.DELETE("/:uid/delete-sent-messages", auth, messageH.PurgeSent)
	users.DELETE("/:uid/delete-received-messages", auth, messageH.PurgeReceived)
	users.POST("/:uid/groups", auth, groupH.Create)
	users.GET("/:uid/groups", groupH.ListForUser)
	users.GET("/:uid/groups/:gid/membership", groupH.Membership)
	users.POST("/:uid/group-messages/:gid", auth, groupMessageH.Send)

	messages := r.Group("/messages")
	messages.GET("", messageH.ListAll)
	messages.GET("/:mid", messageH.Get)
	messages.PUT("/:mid", auth, messageH.Update)
	messages.DELETE("/:mid", auth, messageH.Delete)

	groups := r.Group("/groups")
	groups.GET("", groupH.ListAll)
	groups.GET("/:gid", groupH.Get)
	groups.PUT("/:gid", auth, groupH.Update)
	groups.DELETE("/:gid", auth, groupH.Delete)

	groupMessages := r.Group("/group-messages")
	groupMessages.GET("/:id", groupMessageH.Resolve)
	groupMessages.DELETE("/:id", auth, groupMessageH.Delete)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
