package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongo_InvalidURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "not-a-mongo-uri", time.Second)
	require.Error(t, err)
}

func TestConnectWithRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := ConnectWithRetry(ctx, "not-a-mongo-uri", time.Second, 5)
	require.Error(t, err)
	require.Less(t, time.Since(start), time.Second, "must not sleep through the backoff")
}

func TestPing_NilClient(t *testing.T) {
	require.Error(t, Ping(context.Background(), nil))
}
