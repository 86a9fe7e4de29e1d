package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), "", "timerdeck", "test", true)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestCounterOnNoopMeter(t *testing.T) {
	counter := Counter(noop.NewMeterProvider().Meter("test"), "timerdeck.test.count", "test counter")
	require.NotNil(t, counter)
	counter.Add(context.Background(), 1)
}
