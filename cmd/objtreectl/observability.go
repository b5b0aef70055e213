package main

import (
	"context"

	"github.com/Mindburn-Labs/objgraph/pkg/config"
	"github.com/Mindburn-Labs/objgraph/pkg/observability"
)

// setupObservability builds the tracing/RED-metrics provider for a
// CLI operation. It stays disabled unless cfg.ObservabilityEnabled is
// set (OBJGRAPH_OTEL_ENABLED=true), so a bare invocation never tries
// to dial an OTLP collector that isn't there.
func setupObservability(ctx context.Context, cfg *config.Config) (*observability.Provider, error) {
	oc := observability.DefaultConfig()
	oc.ServiceName = "objtreectl"
	oc.OTLPEndpoint = cfg.OTLPEndpoint
	oc.Enabled = cfg.ObservabilityEnabled
	return observability.New(ctx, oc)
}
