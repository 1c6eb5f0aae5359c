package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"crudkit/internal/config"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{OTELServiceName: "crudkit"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestNormalizeOTLPEndpoint(t *testing.T) {
	got, err := normalizeOTLPEndpoint("http://collector:4317")
	require.NoError(t, err)
	require.Equal(t, "collector:4317", got)

	got, err = normalizeOTLPEndpoint("collector:4317")
	require.NoError(t, err)
	require.Equal(t, "collector:4317", got)

	_, err = normalizeOTLPEndpoint("https://")
	require.Error(t, err)
}
