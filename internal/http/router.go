package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TusharS004/AI-Fitness-Tracker/internal/http/handlers"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/http/middleware"
)

// Handlers groups every handler set mounted by BuildRouter
type Handlers struct {
	Auth    *handlers.AuthHandlers
	Profile *handlers.ProfileHandlers
	Policy  *handlers.PolicyHandlers
}

// BuildRouter mounts the user routes under /api/users and policy
// management under /api/admin. Session routes pass AuthMW then casbin.
func BuildRouter(h Handlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	users := r.Group("/api/users")
	users.POST("/register", h.Auth.Register)
	users.POST("/login", h.Auth.Login)
	users.GET("/logout", jwtmw.Optional(), h.Auth.Logout)

	session := users.Group("", jwtmw.WithToken(), cb.Enforce())
	session.POST("/verifyEmailOtp", h.Auth.VerifyEmailOTP)
	session.POST("/verifyPhoneOtp", h.Auth.VerifyPhoneOTP)
	session.POST("/resendEmailOtp", h.Auth.ResendEmailOTP)
	session.POST("/resendPhoneOtp", h.Auth.ResendPhoneOTP)
	session.GET("/profile", h.Profile.GetProfile)
	session.POST("/profile", h.Profile.AddUserDetails)
	session.GET("/progress", h.Profile.GetProgress)
	session.PUT("/progress", h.Profile.UpdateProgress)

	adm := r.Group("/api/admin", jwtmw.WithToken(), cb.Enforce())
	adm.GET("/policies", h.Policy.List)
	adm.POST("/policies", h.Policy.Add)
	adm.DELETE("/policies", h.Policy.Remove)

	return r
}
