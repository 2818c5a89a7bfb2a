package api

import (
	"errors"
	"net/http"
	"time"

	"tarra_waitlist/internal/model"
	"tarra_waitlist/internal/service"
	"tarra_waitlist/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type waitlistRoutes struct {
	ws service.WaitlistServiceI
}

func NewWaitlistRoutes(handler *gin.RouterGroup, ws service.WaitlistServiceI) {
	r := &waitlistRoutes{ws: ws}
	h := handler.Group("/waitlist")
	{
		h.POST("/", r.Signup)
		h.GET("/status/:id", r.Status)
		h.POST("/recover", r.Recover)
	}
}

type SignupRequest struct {
	FullName     string   `json:"full_name"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phone_number"`
	Interests    []string `json:"interests"`
	ReferralCode string   `json:"referral_code"`
}

type SignupResponse struct {
	ID           string    `json:"id"`
	ReferralCode string    `json:"referral_code"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *waitlistRoutes) Signup(c *gin.Context) {
	log := logger.Logger()

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	draft := &model.ParticipantDraft{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Interests:   req.Interests,
	}

	p, err := r.ws.Signup(c.Request.Context(), draft, req.ReferralCode, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrThrottled):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, please wait"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"error": "this email is already on the waitlist", "field": "email"})
		case errors.Is(err, service.ErrDuplicatePhone):
			c.JSON(http.StatusConflict, gin.H{"error": "this phone number is already on the waitlist", "field": "phone_number"})
		default:
			log.Error("failed to sign up participant", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join the waitlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{
		ID:           p.ID,
		ReferralCode: p.ReferralCode,
		CreatedAt:    p.CreatedAt,
	})
}

func (r *waitlistRoutes) Status(c *gin.Context) {
	log := logger.Logger()

	status, err := r.ws.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no participant associated with the provided id"})
			return
		}
		log.Error("failed to get participant status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"referral_code":  status.ReferralCode,
		"referral_count": status.ReferralCount,
		"rank":           status.Rank,
	})
}

type RecoverRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func (r *waitlistRoutes) Recover(c *gin.Context) {
	log := logger.Logger()

	var req RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := r.ws.Recover(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrParticipantNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"found":   false,
				"message": "Looks like you're new. Let's get you on the list.",
			})
		default:
			log.Error("failed to recover participant", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to recover"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found":   true,
		"user_id": p.ID,
	})
}
