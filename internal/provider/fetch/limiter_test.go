package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostKeyNormalizes(t *testing.T) {
	assert.Equal(t, "rehifi.se", hostKey("https://www.rehifi.se/search?q=nad"))
	assert.Equal(t, "rehifi.se", hostKey("https://WWW.Rehifi.se:443/p/1"))
	assert.Equal(t, "rehifi.se", hostKey("https://rehifi.se"))
	assert.Equal(t, "_", hostKey("not a url"))
	assert.Equal(t, "_", hostKey(""))
}

func TestHostLimiterSharesBucketAcrossWWWVariants(t *testing.T) {
	hl := NewHostLimiter(1000, 1)
	ctx := context.Background()
	require.NoError(t, hl.WaitURL(ctx, "https://www.rehifi.se/a"))
	require.NoError(t, hl.WaitURL(ctx, "https://rehifi.se/b"))
	assert.Len(t, hl.m, 1, "www and bare host share one limiter")
}

func TestHostLimiterSeparatesHosts(t *testing.T) {
	hl := NewHostLimiter(0.001, 1)
	ctx := context.Background()
	require.NoError(t, hl.WaitURL(ctx, "https://rehifi.se/a"))
	// a different host has its own fresh burst and returns immediately
	done := make(chan struct{})
	go func() {
		_ = hl.WaitURL(ctx, "https://www.tradera.com/b")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second host blocked on the first host's bucket")
	}
}
