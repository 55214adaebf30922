package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// CasbinMW authorizes requests by (role_<role>, route, method)
type CasbinMW struct {
	policies domain.PolicyService
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policies domain.PolicyService) *CasbinMW {
	return &CasbinMW{policies: policies}
}

// Enforce returns the casbin authorization middleware. It must run after AuthMW.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User role not found in token"})
			return
		}

		// Match against the route pattern when gin resolved one.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, err := mw.policies.CheckPermission("role_"+role, path, c.Request.Method)
		if err != nil {
			log.Printf("casbin: enforce failed for %s %s: %v", c.Request.Method, path, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Next()
	}
}
