package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfaware/backend/internal/domain"
	"github.com/shelfaware/backend/internal/usecase"
	"go.uber.org/zap"
)

// Error codes surfaced in the response envelope.
const (
	codeValidation       = "VALIDATION_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeStoreUnavailable = "STORE_UNAVAILABLE"
	codeRemote           = "REMOTE_ERROR"
	codeRateLimited      = "RATE_LIMITED"
	codeServer           = "SERVER_ERROR"
)

// BarcodeResolver is the slice of the resolution pipeline the handler needs.
type BarcodeResolver interface {
	Resolve(ctx context.Context, rawBarcode string) (*usecase.Resolution, error)
}

// LookupResponse is the one fixed envelope every lookup outcome uses —
// success and failure alike, no ad hoc shapes per endpoint.
type LookupResponse struct {
	Success bool              `json:"success"`
	Source  string            `json:"source,omitempty"`
	Cached  bool              `json:"cached"`
	Items   []*domain.Product `json:"items"`
	Error   string            `json:"error,omitempty"`
	Status  int               `json:"status"`
	Details string            `json:"details,omitempty"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver BarcodeResolver
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(resolver BarcodeResolver, logger *zap.Logger) *Handler {
	return &Handler{resolver: resolver, logger: logger}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shelfaware-backend",
		"version": "1.0.0",
	})
}

// LookupBarcode resolves ?barcode= into a canonical product.
func (h *Handler) LookupBarcode(c *gin.Context) {
	resolution, err := h.resolver.Resolve(c.Request.Context(), c.Query("barcode"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, LookupResponse{
		Success: true,
		Source:  string(resolution.Source),
		Cached:  resolution.Source == domain.SourceCache,
		Items:   []*domain.Product{resolution.Product},
		Status:  http.StatusOK,
		Details: resolution.Warning,
	})
}

// writeError maps the error taxonomy onto HTTP statuses. Only here does an
// unexpected internal fault become a generic SERVER_ERROR; the detail stays
// in the logs, never in the response.
func (h *Handler) writeError(c *gin.Context, err error) {
	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrInvalidBarcode):
		writeFailure(c, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		writeFailure(c, http.StatusNotFound, codeNotFound, "no product matches this barcode")
	case errors.Is(err, domain.ErrStoreUnavailable):
		h.logger.Error("product store unavailable", zap.Error(err))
		writeFailure(c, http.StatusServiceUnavailable, codeStoreUnavailable, "product store unavailable")
	case errors.As(err, &upstream):
		h.logger.Error("upstream lookup failed", zap.Int("upstream_status", upstream.StatusCode), zap.Error(err))
		status := upstream.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusServiceUnavailable
		}
		writeFailure(c, status, codeRemote, "barcode lookup API failed")
	case errors.Is(err, domain.ErrRemoteFailure):
		h.logger.Error("upstream lookup unreachable", zap.Error(err))
		writeFailure(c, http.StatusServiceUnavailable, codeRemote, "barcode lookup API unreachable")
	default:
		h.logger.Error("unhandled resolution failure", zap.Error(err))
		writeFailure(c, http.StatusInternalServerError, codeServer, "internal server error")
	}
}

func writeFailure(c *gin.Context, status int, code, details string) {
	c.JSON(status, LookupResponse{
		Success: false,
		Error:   code,
		Status:  status,
		Details: details,
	})
}
