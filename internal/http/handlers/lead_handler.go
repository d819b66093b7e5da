// Lead HTTP handlers.
//
// This file exposes REST endpoints for the lead intake pipeline:
//   - POST   /leads                  (run the full submission pipeline)
//   - GET    /leads/cooldown         (read-only cooldown probe)
//   - POST   /leads/duplicate-check  (read-only duplicate probe)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate pipeline outcomes into HTTP responses. The pipeline's
// rejection kinds map onto statuses one-to-one (cooldown 429, validation 400,
// duplicate 409, submission 502) so form frontends can branch on status alone.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-leads-backend/internal/http/middleware"
	"github.com/tbourn/go-leads-backend/internal/services"
	"github.com/tbourn/go-leads-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// LeadService defines the submission pipeline operation consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type LeadService interface {
	// Submit runs one full submission attempt and returns its outcome.
	Submit(ctx context.Context, in services.SubmitInput) services.SubmitResult
}

// DuplicateService defines the standalone duplicate probe and the local
// collection maintenance operation.
type DuplicateService interface {
	// CheckDuplicate reports whether the contact is already on file.
	CheckDuplicate(ctx context.Context, mobile, email string, opts services.CheckOptions) services.DuplicateResult
	// ClearLocal wipes the local submitted-contacts collection.
	ClearLocal(ctx context.Context) error
}

// CooldownService defines the read-only cooldown probe.
type CooldownService interface {
	// Check reports cooldown state without touching the marker.
	Check(ctx context.Context, window time.Duration) services.CooldownStatus
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for leads, probes, tracking, and admin
// maintenance. It depends on abstract service interfaces to keep transport
// concerns separate from business logic; the raw DB handle serves only the
// admin contact listing.
type Handlers struct {
	leadSvc  LeadService
	dupSvc   DuplicateService
	cdSvc    CooldownService
	trackSvc TrackingService
	db       *gorm.DB
}

// New constructs and returns a Handlers instance bound to the given services.
func New(leadSvc LeadService, dupSvc DuplicateService, cdSvc CooldownService, trackSvc TrackingService, db *gorm.DB) *Handlers {
	return &Handlers{leadSvc: leadSvc, dupSvc: dupSvc, cdSvc: cdSvc, trackSvc: trackSvc, db: db}
}

//
// DTOs
//

// SubmitLeadRequest is the JSON payload for submitting an enquiry.
type SubmitLeadRequest struct {
	// Name is the visitor's display name.
	Name string `json:"name" binding:"required,min=1,max=255" example:"Asha Rao"`
	// Mobile is the contact phone number; normalized server-side.
	Mobile string `json:"mobile" binding:"required" example:"+91 98765 43210"`
	// Email is the contact email address; normalized server-side.
	Email string `json:"email" binding:"required" example:"asha@example.com"`
	// Message is the free-text enquiry body.
	Message string `json:"message" binding:"max=4000" example:"Interested in a 2BHK with a garden view."`
	// Source labels the form or campaign the lead came from.
	Source string `json:"source" example:"contact-form"`
	// Extra carries arbitrary form metadata (campaign tags, unit type, ...).
	Extra map[string]string `json:"extra"`
}

// SubmitLeadResponse is returned when the pipeline accepts the lead.
type SubmitLeadResponse struct {
	OK     bool   `json:"ok" example:"true"`
	LeadID string `json:"lead_id" example:"42"`
}

// RejectionResponse is the error envelope for pipeline rejections. It extends
// the standard ErrorResponse with the rejection detail the form needs to
// render a useful message.
type RejectionResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"cooldown_active"`
	Message   string `json:"message" example:"Please wait 240 seconds before submitting another enquiry."`

	RemainingSeconds int               `json:"remaining_seconds,omitempty" example:"240"`
	PhoneExists      bool              `json:"phone_exists,omitempty"`
	EmailExists      bool              `json:"email_exists,omitempty"`
	FieldErrors      map[string]string `json:"field_errors,omitempty"`
}

// CheckDuplicateRequest is the JSON payload for the standalone duplicate probe.
type CheckDuplicateRequest struct {
	Mobile string `json:"mobile" example:"+91 98765 43210"`
	Email  string `json:"email" example:"asha@example.com"`
	// LocalOnly skips the remote lookup (fast pre-check while typing).
	LocalOnly bool `json:"local_only"`
}

//
// Helpers
//

// rejectionStatus maps a pipeline rejection kind onto (HTTP status, error code).
func rejectionStatus(kind services.Kind) (int, string) {
	switch kind {
	case services.KindCooldown:
		return http.StatusTooManyRequests, ErrCodeCooldownActive
	case services.KindValidation:
		return http.StatusBadRequest, ErrCodeValidationFailed
	case services.KindDuplicate:
		return http.StatusConflict, ErrCodeDuplicateContact
	default:
		return http.StatusBadGateway, ErrCodeSubmitFailed
	}
}

// reject writes the rejection envelope for a failed pipeline outcome.
func reject(c *gin.Context, res services.SubmitResult) {
	status, code := rejectionStatus(res.Kind)
	if res.Kind == services.KindCooldown && res.RemainingSeconds > 0 {
		c.Header("Retry-After", strconv.Itoa(res.RemainingSeconds))
	}
	c.AbortWithStatusJSON(status, RejectionResponse{
		RequestID:        c.Writer.Header().Get("X-Request-ID"),
		Code:             code,
		Message:          res.Message,
		RemainingSeconds: res.RemainingSeconds,
		PhoneExists:      res.PhoneExists,
		EmailExists:      res.EmailExists,
		FieldErrors:      res.FieldErrors,
	})
}

//
// Handlers
//

// SubmitLead godoc
// @ID          submitLead
// @Summary     Submit an enquiry
// @Description Runs the full submission pipeline (cooldown, validation, duplicate guard, remote create) and returns the accepted lead id or a typed rejection.
// @Tags        Leads
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SubmitLeadRequest  true  "Enquiry payload"
//
// @Success     201  {object}  handlers.SubmitLeadResponse
// @Failure     400  {object}  handlers.RejectionResponse  "Validation failed"
// @Failure     409  {object}  handlers.RejectionResponse  "Duplicate contact"
// @Failure     429  {object}  handlers.RejectionResponse  "Cooldown active"
// @Failure     502  {object}  handlers.RejectionResponse  "Remote submission failed"
// @Router      /leads [post]
func (h *Handlers) SubmitLead(c *gin.Context) {
	var req SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	res := h.leadSvc.Submit(c.Request.Context(), services.SubmitInput{
		Name:      req.Name,
		Mobile:    req.Mobile,
		Email:     req.Email,
		Message:   req.Message,
		Source:    req.Source,
		Extra:     req.Extra,
		UserAgent: c.Request.UserAgent(),
	})
	middleware.ObserveSubmission(string(res.Kind))
	if !res.OK {
		reject(c, res)
		return
	}
	ok(c, http.StatusCreated, SubmitLeadResponse{OK: true, LeadID: res.LeadID})
}

// CheckCooldown godoc
// @ID          checkCooldown
// @Summary     Probe the submission cooldown
// @Description Reports whether a new submission would currently be rejected by the cooldown, without affecting the cooldown state. Forms poll this to disable their submit button.
// @Tags        Leads
// @Produce     json
//
// @Param       window  query  int  false  "Cooldown window override in seconds"  minimum(1)
//
// @Success     200  {object}  services.CooldownStatus
// @Router      /leads/cooldown [get]
func (h *Handlers) CheckCooldown(c *gin.Context) {
	windowSecs := utils.AtoiDefault(c.Query("window"), 0)
	if windowSecs < 0 {
		windowSecs = 0
	}
	status := h.cdSvc.Check(c.Request.Context(), time.Duration(windowSecs)*time.Second)
	ok(c, http.StatusOK, status)
}

// CheckDuplicate godoc
// @ID          checkDuplicate
// @Summary     Probe the duplicate guard
// @Description Reports whether the given contact fingerprint is already on file, locally or remotely. Read-only: probing never records the contact.
// @Tags        Leads
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CheckDuplicateRequest  true  "Contact fingerprint"
//
// @Success     200  {object}  services.DuplicateResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /leads/duplicate-check [post]
func (h *Handlers) CheckDuplicate(c *gin.Context) {
	var req CheckDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.Mobile == "" && req.Email == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "mobile or email required")
		return
	}

	opts := services.DefaultCheckOptions()
	if req.LocalOnly {
		opts.Remote = false
	}
	res := h.dupSvc.CheckDuplicate(c.Request.Context(), req.Mobile, req.Email, opts)
	ok(c, http.StatusOK, res)
}
