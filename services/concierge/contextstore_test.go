package concierge

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"growthquest/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisContextStore_RoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisContextStore(client, 30*time.Minute)

	cc := &models.ConciergeContext{
		LastOfferingID: "off-photo",
		LastCohortID:   "coh-photo",
		HoldSessionID:  "sess-1",
	}
	payload, err := json.Marshal(cc)
	require.NoError(t, err)

	mock.ExpectSet("concierge:ctx:user-1", payload, 30*time.Minute).SetVal("OK")
	require.NoError(t, store.Set(context.Background(), "user-1", cc))

	mock.ExpectGet("concierge:ctx:user-1").SetVal(string(payload))
	got, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, cc, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisContextStore_MissingUserIsEmptyContext(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisContextStore(client, 30*time.Minute)

	mock.ExpectGet("concierge:ctx:stranger").RedisNil()

	got, err := store.Get(context.Background(), "stranger")
	require.NoError(t, err)
	assert.Equal(t, &models.ConciergeContext{}, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisContextStore_Clear(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisContextStore(client, 30*time.Minute)

	mock.ExpectDel("concierge:ctx:user-1").SetVal(1)
	require.NoError(t, store.Clear(context.Background(), "user-1"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisContextStore_CorruptPayload(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisContextStore(client, 30*time.Minute)

	mock.ExpectGet("concierge:ctx:user-1").SetVal("{not json")

	_, err := store.Get(context.Background(), "user-1")
	assert.Error(t, err)
}
