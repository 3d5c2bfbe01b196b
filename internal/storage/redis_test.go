package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaldic/campaign-engine/pkg/state"
)

func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	rs, err := NewRedisStorage("redis://"+mr.Addr(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { rs.Close() })

	return rs, mr
}

func TestRedisStorageRoundTrip(t *testing.T) {
	rs, _ := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, rs.Ping(ctx))

	id := uuid.New()
	cs := state.NewCampaignState("windhelm run")
	cs.EnsureCivilWar().PlayerAlliance = state.AllianceStormcloak
	cs.SetFlag("stormcloaks_intro_complete")

	require.NoError(t, rs.SaveCampaign(ctx, id, cs))

	loaded, err := rs.LoadCampaign(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "windhelm run", loaded.Name)
	assert.Equal(t, state.AllianceStormcloak, loaded.CivilWar.PlayerAlliance)
	assert.True(t, loaded.Flag("stormcloaks_intro_complete"))
}

func TestRedisStorageLoadMissing(t *testing.T) {
	rs, _ := setupTestRedis(t)

	loaded, err := rs.LoadCampaign(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorageCorruptDocument(t *testing.T) {
	rs, mr := setupTestRedis(t)
	id := uuid.New()
	require.NoError(t, mr.Set(campaignKeyPrefix+id.String(), "not a document"))

	loaded, err := rs.LoadCampaign(context.Background(), id)
	assert.Nil(t, loaded)

	var corrupt *DocumentCorruptError
	require.ErrorAs(t, err, &corrupt)
	assert.Contains(t, corrupt.Key, id.String())
}

func TestRedisStorageUnavailable(t *testing.T) {
	rs, mr := setupTestRedis(t)
	mr.Close()

	ctx := context.Background()
	err := rs.Ping(ctx)

	var unavailable *StoreUnavailableError
	require.ErrorAs(t, err, &unavailable)

	err = rs.SaveCampaign(ctx, uuid.New(), state.NewCampaignState("doomed"))
	require.ErrorAs(t, err, &unavailable)
}

func TestRedisStorageDeleteAndList(t *testing.T) {
	rs, _ := setupTestRedis(t)
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	require.NoError(t, rs.SaveCampaign(ctx, a, state.NewCampaignState("a")))
	require.NoError(t, rs.SaveCampaign(ctx, b, state.NewCampaignState("b")))

	ids, err := rs.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	require.NoError(t, rs.DeleteCampaign(ctx, a))

	ids, err = rs.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, b, ids[0])
}
