package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDisabledSkipsProviderInit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.Nil(t, p.tracerProvider)
	require.Nil(t, p.meterProvider)
}

func TestNewNilConfigUsesDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := New(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, cfg.ServiceName, p.config.ServiceName)
}

func TestTracerFallsBackToGlobalWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, p.Tracer())
}

func TestTrackOperationRecordsSuccessAndFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := New(context.Background(), cfg)
	require.NoError(t, err)

	ctx, done := p.TrackOperation(context.Background(), "build_tree")
	require.NotNil(t, ctx)
	done(nil)

	_, done = p.TrackOperation(context.Background(), "build_tree")
	done(errors.New("boom"))
}

func TestShutdownIsSafeWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, p.Shutdown(context.Background()))
}
