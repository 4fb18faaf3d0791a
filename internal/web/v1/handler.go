package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/marketplace-service/internal/core/domain"
	logicv1 "github.com/duynhne/marketplace-service/internal/logic/v1"
	"github.com/duynhne/marketplace-service/middleware"
	pkgzerolog "github.com/duynhne/marketplace-service/pkg/logger/zerolog"
)

// Handler groups HTTP handlers for the marketplace API v1.
// Dependencies are injected via the constructor, no global state.
type Handler struct {
	auth        *logicv1.AuthService
	listings    *logicv1.ListingService
	diagnostics *logicv1.DiagnosticsService
}

// NewHandler creates a new Handler with the given services.
func NewHandler(auth *logicv1.AuthService, listings *logicv1.ListingService, diagnostics *logicv1.DiagnosticsService) *Handler {
	return &Handler{
		auth:        auth,
		listings:    listings,
		diagnostics: diagnostics,
	}
}

// RegisterRoutes registers the /api routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
	rg.POST("/listings", h.CreateListing)
	rg.GET("/listings", h.ListListings)
	rg.GET("/listings/:id", h.GetListing)
}

// RegisterRootRoutes registers the banner and diagnostics routes.
func (h *Handler) RegisterRootRoutes(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/test", h.Diagnostics)
}

func startSpan(c *gin.Context) (context.Context, trace.Span) {
	return middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.FullPath()),
	))
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		writeError(c, span, domain.BodyError(err))
		return
	}

	user, err := h.auth.Register(ctx, req)
	if err != nil {
		logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		writeError(c, span, err)
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("Registration successful")
	c.JSON(http.StatusOK, user)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		writeError(c, span, domain.BodyError(err))
		return
	}

	user, err := h.auth.Login(ctx, req)
	if err != nil {
		logger.Warn().Err(err).Msg("Login failed")
		writeError(c, span, err)
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("Login successful")
	c.JSON(http.StatusOK, user)
}

// CreateListing handles POST /api/listings.
func (h *Handler) CreateListing(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	var req domain.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		writeError(c, span, domain.BodyError(err))
		return
	}

	created, err := h.listings.Create(ctx, req)
	if err != nil {
		logger.Warn().Err(err).Str("seller_email", req.SellerEmail).Msg("Create listing failed")
		writeError(c, span, err)
		return
	}

	logger.Info().Str("listing_id", created.ID).Msg("Listing created")
	c.JSON(http.StatusOK, created)
}

// ListListings handles GET /api/listings?title=&author=&isbn=.
func (h *Handler) ListListings(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var filter domain.ListingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		writeError(c, span, domain.BodyError(err))
		return
	}

	listings, err := h.listings.List(ctx, filter)
	if err != nil {
		pkgzerolog.FromContext(ctx).Error().Err(err).Msg("List listings failed")
		writeError(c, span, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// GetListing handles GET /api/listings/:id.
func (h *Handler) GetListing(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	listing, err := h.listings.Get(ctx, c.Param("id"))
	if err != nil {
		pkgzerolog.FromContext(ctx).Warn().Err(err).Msg("Get listing failed")
		writeError(c, span, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Root handles GET /.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Book Marketplace Backend running"})
}

// Diagnostics handles GET /test. Store failures are reported in the body,
// the status is always 200.
func (h *Handler) Diagnostics(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	report, err := h.diagnostics.Check(ctx)
	if err != nil {
		span.RecordError(err)
		pkgzerolog.FromContext(ctx).Warn().Err(err).Msg("Store diagnostics degraded")
	}

	c.JSON(http.StatusOK, report)
}

// writeError maps logic errors to HTTP responses.
func writeError(c *gin.Context, span trace.Span, err error) {
	span.RecordError(err)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "details": verr.Fields})
	case errors.Is(err, logicv1.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
	case errors.Is(err, logicv1.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, logicv1.ErrSellerNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seller not found"})
	case errors.Is(err, logicv1.ErrMalformedID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
	case errors.Is(err, logicv1.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		pkgzerolog.FromContext(c.Request.Context()).Error().Err(err).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
