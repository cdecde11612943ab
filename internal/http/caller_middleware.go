package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tuiter/internal/service"
)

const callerIDKey = "caller_id"

// CallerIDMiddleware resuelve el id del caller una sola vez en el
// borde a partir del access token. Con jwtSvc nil la autenticación
// queda deshabilitada y los ids de la ruta se toman tal cual.
func CallerIDMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := jwtSvc.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(callerIDKey, claims.UserID)
		c.Next()
	}
}

// CallerID obtiene el id del caller resuelto por el middleware.
func CallerID(c *gin.Context) (string, bool) {
	val, ok := c.Get(callerIDKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// enforceCaller corta con 403 cuando la ruta actúa en nombre de un
// usuario distinto del caller autenticado. Sin auth configurada no
// aplica restricción.
func enforceCaller(c *gin.Context, userID string) bool {
	caller, ok := CallerID(c)
	if !ok {
		return true
	}
	if caller != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "caller mismatch"})
		return false
	}
	return true
}
