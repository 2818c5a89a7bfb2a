package api

import (
	"errors"
	"net/http"
	"time"

	"tarra_waitlist/internal/middleware"
	"tarra_waitlist/internal/service"
	"tarra_waitlist/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type adminRoutes struct {
	fs service.FraudServiceI
	gs service.GhostServiceI
}

func NewAdminRoutes(handler *gin.RouterGroup, fs service.FraudServiceI, gs service.GhostServiceI, a *middleware.Authorization) {
	r := &adminRoutes{fs: fs, gs: gs}
	h := handler.Group("/admin")
	h.Use(a.AdminOnly())
	{
		h.GET("/participants/:id/audit", r.Audit)
		h.POST("/seed-ghosts", r.SeedGhosts)
	}
}

type auditEdge struct {
	FirstName   string    `json:"first_name"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	Flags       []string  `json:"flags,omitempty"`
}

func (r *adminRoutes) Audit(c *gin.Context) {
	log := logger.Logger()

	report, err := r.fs.Audit(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		log.Error("failed to build audit report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to audit participant"})
		return
	}

	flags := make([]string, len(report.Flags))
	for i, f := range report.Flags {
		flags[i] = string(f)
	}

	edges := make([]auditEdge, len(report.Edges))
	for i, e := range report.Edges {
		edgeFlags := make([]string, len(e.Flags))
		for j, f := range e.Flags {
			edgeFlags[j] = string(f)
		}
		edges[i] = auditEdge{
			FirstName:   e.FirstName,
			PhoneNumber: e.PhoneNumber,
			CreatedAt:   e.CreatedAt,
			Flags:       edgeFlags,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"participant_id": report.ParticipantID,
		"full_name":      report.FullName,
		"referral_count": report.ReferralCount,
		"flags":          flags,
		"edges":          edges,
	})
}

func (r *adminRoutes) SeedGhosts(c *gin.Context) {
	log := logger.Logger()

	n, err := r.gs.SeedGhosts(c.Request.Context())
	if err != nil {
		log.Error("failed to seed ghosts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to seed ghosts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seeded": n,
	})
}
