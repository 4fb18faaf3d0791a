package v1

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInspector struct {
	names []string
	err   error
}

func (f fakeInspector) Name() string { return "marketplace" }
func (f fakeInspector) ListCollectionNames(context.Context) ([]string, error) {
	return f.names, f.err
}

func TestDiagnosticsService_Healthy(t *testing.T) {
	var names []string
	for i := 0; i < 12; i++ {
		names = append(names, fmt.Sprintf("c%02d", i))
	}

	d, err := NewDiagnosticsService(fakeInspector{names: names}, true, false).Check(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "✅ Running", d.Backend)
	assert.Equal(t, "✅ Connected & Working", d.Database)
	assert.Equal(t, "Connected", d.ConnectionStatus)
	assert.Equal(t, "✅ Set", d.DatabaseURL)
	assert.Equal(t, "❌ Not Set", d.DatabaseName)
	assert.Len(t, d.Collections, 10)
}

func TestDiagnosticsService_StoreError(t *testing.T) {
	long := errors.New(strings.Repeat("x", 200))

	d, err := NewDiagnosticsService(fakeInspector{err: long}, false, false).Check(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	require.NotNil(t, d)
	assert.Equal(t, "⚠️ Connected but Error: "+strings.Repeat("x", 80), d.Database)
	assert.Empty(t, d.Collections)
}

func TestDiagnosticsService_NoStore(t *testing.T) {
	d, err := NewDiagnosticsService(nil, false, false).Check(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, "❌ Not Available", d.Database)
	assert.Equal(t, "Not Connected", d.ConnectionStatus)
	assert.NotNil(t, d.Collections)
}
