package v1

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/marketplace-service/internal/core/domain"
	"github.com/duynhne/marketplace-service/middleware"
)

// Status values reported by /test.
const (
	statusRunning      = "✅ Running"
	statusNotAvailable = "❌ Not Available"
	statusAvailable    = "✅ Available"
	statusWorking      = "✅ Connected & Working"
	statusErrorPrefix  = "⚠️ Connected but Error: "
	statusSet          = "✅ Set"
	statusNotSet       = "❌ Not Set"
	statusConnected    = "Connected"
	statusNotConnected = "Not Connected"
)

const (
	maxReportedCollections = 10
	maxReportedErrorLen    = 80
	diagnosticsTimeout     = 3 * time.Second
)

// DiagnosticsService reports backend and store status.
type DiagnosticsService struct {
	store   domain.StoreInspector
	urlSet  bool
	nameSet bool
}

// NewDiagnosticsService creates a DiagnosticsService. store may be nil when no
// store connection was established; urlSet and nameSet tell whether the
// database URL and name were configured explicitly.
func NewDiagnosticsService(store domain.StoreInspector, urlSet, nameSet bool) *DiagnosticsService {
	return &DiagnosticsService{store: store, urlSet: urlSet, nameSet: nameSet}
}

// Check always returns a report. The error wraps ErrStoreUnavailable when the
// store could not be queried; the report then carries the degraded status.
func (s *DiagnosticsService) Check(ctx context.Context) (*domain.Diagnostics, error) {
	ctx, span := middleware.StartSpan(ctx, "diagnostics.check", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	d := &domain.Diagnostics{
		Backend:          statusRunning,
		Database:         statusNotAvailable,
		DatabaseURL:      setOrNot(s.urlSet),
		DatabaseName:     setOrNot(s.nameSet),
		ConnectionStatus: statusNotConnected,
		Collections:      []string{},
	}

	if s.store == nil {
		return d, fmt.Errorf("no store configured: %w", ErrStoreUnavailable)
	}
	d.Database = statusAvailable
	d.ConnectionStatus = statusConnected

	ctx, cancel := context.WithTimeout(ctx, diagnosticsTimeout)
	defer cancel()

	names, err := s.store.ListCollectionNames(ctx)
	if err != nil {
		span.RecordError(err)
		d.Database = statusErrorPrefix + truncate(err.Error(), maxReportedErrorLen)
		return d, fmt.Errorf("list collections of %q: %w: %v", s.store.Name(), ErrStoreUnavailable, err)
	}

	if len(names) > maxReportedCollections {
		names = names[:maxReportedCollections]
	}
	d.Collections = append(d.Collections, names...)
	d.Database = statusWorking

	span.SetAttributes(attribute.Int("collections", len(d.Collections)))
	return d, nil
}

func setOrNot(set bool) string {
	if set {
		return statusSet
	}
	return statusNotSet
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
