package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	TokensIssued.Inc()
	AccessDenied.WithLabelValues("forbidden").Inc()

	n, err := testutil.GatherAndCount(reg, "modelgate_tokens_issued_total", "modelgate_access_denied_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Panics(t, func() { RegisterCollectors(reg) }, "double registration must fail loudly")
}
