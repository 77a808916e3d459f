package v1

import (
	"errors"
	"net/http"
	"strings"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	// maxIdempotencyKeyLength bounds client supplied idempotency keys.
	maxIdempotencyKeyLength = 128
	// maxContactBodyBytes bounds the JSON body of a submission.
	maxContactBodyBytes = 32 << 10
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	seclog    *security.SecurityLogger
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase, seclog *security.SecurityLogger) {
	handler := &ContactHandler{
		contactUC: contactUC,
		seclog:    seclog,
	}

	api.POST("/send-email", handler.SendEmail)
}

// SendEmail godoc
// @Summary      Submit Contact Form
// @Description  Sends a notification to the site owner and an acknowledgement to the sender.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                  false  "Deduplicates retries of the same submission"
// @Param        contact          body      domain.ContactRequest  true   "Contact Form Data"
// @Success      200              {object}  response.Response
// @Failure      400              {object}  response.Response
// @Failure      409              {object}  response.Response
// @Failure      413              {object}  response.Response
// @Failure      500              {object}  response.Response
// @Failure      503              {object}  response.Response
// @Router       /send-email [post]
func (h *ContactHandler) SendEmail(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)

	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(apperror.New(http.StatusRequestEntityTooLarge, "Request body too large", err))
			return
		}
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	key := strings.TrimSpace(c.GetHeader(domain.HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLength {
		c.Error(apperror.BadRequest("Invalid Idempotency-Key header"))
		return
	}

	result, err := h.contactUC.SendContactMessage(c.Request.Context(), &req, key)
	if err != nil {
		h.logSecurityEvent(c, &req, key, err)
		c.Error(contactError(err))
		return
	}

	if result.Duplicate {
		h.seclog.LogDuplicateSubmission(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(), c.GetString(string(domain.KeyRequestID)), key, false)
		response.Success(c, http.StatusOK, "Message already received", nil)
		return
	}
	response.Success(c, http.StatusOK, "Emails sent successfully!", nil)
}

// logSecurityEvent records rejected and failed submissions. Field values
// never reach the log.
func (h *ContactHandler) logSecurityEvent(c *gin.Context, req *domain.ContactRequest, key string, err error) {
	ctx := c.Request.Context()
	ip := c.ClientIP()
	userAgent := c.Request.UserAgent()
	requestID := c.GetString(string(domain.KeyRequestID))

	var verrs validation.Errors
	var dispatchErr *domain.DispatchError
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		h.seclog.LogSubmissionRejected(ctx, ip, userAgent, requestID, validation.MissingFields(req.Name, req.Email, req.Message))
	case errors.As(err, &verrs):
		h.seclog.LogSubmissionRejected(ctx, ip, userAgent, requestID, verrs.FieldNames())
	case errors.Is(err, domain.ErrSubmissionInProgress):
		h.seclog.LogDuplicateSubmission(ctx, ip, userAgent, requestID, key, true)
	case errors.As(err, &dispatchErr):
		h.seclog.LogDispatchFailed(ctx, strings.TrimSpace(req.Email), ip, userAgent, requestID, string(dispatchErr.Stage))
	}
}

// contactError maps usecase failures onto HTTP errors
func contactError(err error) *apperror.AppError {
	var verrs validation.Errors
	var dispatchErr *domain.DispatchError

	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return apperror.New(http.StatusBadRequest, "Missing required fields", err)
	case errors.As(err, &verrs):
		return apperror.Validation("Invalid submission", verrs)
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return apperror.New(http.StatusConflict, "Submission already in progress", err)
	case errors.Is(err, domain.ErrMailerNotConfigured):
		return apperror.ServiceUnavailable("Contact service temporarily unavailable", err)
	case errors.As(err, &dispatchErr):
		return apperror.New(http.StatusInternalServerError, "Failed to send email: "+transportMessage(dispatchErr), err)
	default:
		return apperror.Internal(err)
	}
}

// transportMessage returns the provider's own message, without the
// provider/op prefix or the dispatch stage.
func transportMessage(err *domain.DispatchError) string {
	var te *email.TransportError
	if errors.As(err, &te) && te.Err != nil {
		return te.Err.Error()
	}
	return err.Err.Error()
}
