package zerolog

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Level(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	Setup("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Setup("bogus")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestFromContext(t *testing.T) {
	assert.Same(t, &log.Logger, FromContext(context.Background()))

	var buf bytes.Buffer
	l := zerolog.New(&buf).With().Str("trace_id", "t1").Logger()
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"trace_id":"t1"`)
}
