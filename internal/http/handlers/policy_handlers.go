package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// PolicyHandlers exposes route policy management to admins
type PolicyHandlers struct {
	policies domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policies domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policies: policies}
}

// PolicyRequest identifies one (role, path, method) rule
type PolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Path   string `json:"path" binding:"required"`
	Method string `json:"method" binding:"required"`
}

// List returns every stored policy
func (h *PolicyHandlers) List(c *gin.Context) {
	policies := h.policies.GetPolicies()
	if policies == nil {
		policies = [][]string{}
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"policies": policies}})
}

// Add stores a new policy
func (h *PolicyHandlers) Add(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role, path and method are required"})
		return
	}
	if err := h.policies.AddPolicy(req.Role, req.Path, req.Method); err != nil {
		log.Printf("policy: add %v failed: %v", req, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add policy"})
		return
	}
	log.Printf("POLICY_ADDED: role=%s path=%s method=%s", req.Role, req.Path, req.Method)
	c.Status(http.StatusNoContent)
}

// Remove deletes a policy
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role, path and method are required"})
		return
	}
	if err := h.policies.RemovePolicy(req.Role, req.Path, req.Method); err != nil {
		log.Printf("policy: remove %v failed: %v", req, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove policy"})
		return
	}
	log.Printf("POLICY_REMOVED: role=%s path=%s method=%s", req.Role, req.Path, req.Method)
	c.Status(http.StatusNoContent)
}
