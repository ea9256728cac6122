package sink_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/records"
	"github.com/agentstation/partsync/pkg/sink"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "partsync:passives:R1", sink.Key("partsync", "passives", "R1"))
}

func TestMemorySink(t *testing.T) {
	s := sink.NewMemorySink()
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "passives", records.FromPairs("name", "R1", "value", "10k")))
	require.NoError(t, s.Write(ctx, "passives", records.FromPairs("name", "C1", "value", "100n")))
	require.NoError(t, s.Write(ctx, "passives", records.FromPairs("name", "R1", "value", "1k")))

	recs := s.Records("passives")
	require.Len(t, recs, 2)
	assert.Equal(t, "1k", recs[0].Value("value"))
	assert.Empty(t, s.Records("other"))

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, s.Write(cctx, "passives", records.FromPairs("name", "X")))

	require.NoError(t, s.Close())
	assert.True(t, s.Closed())
}

func TestRedisSink(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	s := sink.NewRedisSink(addr, os.Getenv("REDIS_PASSWORD"), 0, "partsync-test-"+uuid.NewString())
	defer func() { _ = s.Close() }()
	require.NoError(t, s.Ping(ctx))

	require.NoError(t, s.Write(ctx, "passives", records.FromPairs("name", "R1", "value", "10k", "rev", "")))
	got, err := s.Read(ctx, "passives", "R1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "R1", "value": "10k", "rev": ""}, got)

	_, err = s.Read(ctx, "passives", "missing")
	assert.True(t, errors.IsNotFound(err))

	assert.True(t, errors.IsMissingName(s.Write(ctx, "passives", records.New())))
}
