package cron

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"growthquest/models"
	"growthquest/services/holdsession"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver records Expire calls; the other resolver methods are unused
// by the worker.
type stubResolver struct {
	expired   []string
	expireErr error
}

func (s *stubResolver) Hold(string, string) (*holdsession.Session, error) { return nil, nil }
func (s *stubResolver) Confirm(string, []string) (*models.Booking, error) { return nil, nil }
func (s *stubResolver) Cancel(string) error                               { return nil }
func (s *stubResolver) JoinWaitlist(string, string) (*models.Booking, error) {
	return nil, nil
}
func (s *stubResolver) SuggestBundle(string) *models.BundleSuggestion { return nil }
func (s *stubResolver) Remaining(string) (time.Duration, error) { return 0, nil }
func (s *stubResolver) ListBookings(string) []models.Booking { return nil }

func (s *stubResolver) Expire(sessionID string) error {
	s.expired = append(s.expired, sessionID)
	return s.expireErr
}

func expireTask(t *testing.T, sessionID string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(holdExpirePayload{SessionID: sessionID})
	require.NoError(t, err)
	return asynq.NewTask(TypeHoldExpire, payload)
}

func TestHandleHoldExpireTask(t *testing.T) {
	resolver := &stubResolver{}
	handler := handleHoldExpireTask(resolver)

	err := handler(context.Background(), expireTask(t, "sess-1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-1"}, resolver.expired)
}

func TestHandleHoldExpireTask_AlreadyHandledIsNoOp(t *testing.T) {
	for _, swallowed := range []error{holdsession.ErrHoldExpired, holdsession.ErrInvalidState, holdsession.ErrSessionNotFound} {
		resolver := &stubResolver{expireErr: swallowed}
		handler := handleHoldExpireTask(resolver)

		err := handler(context.Background(), expireTask(t, "sess-1"))
		assert.NoError(t, err)
	}
}

func TestHandleHoldExpireTask_BadPayload(t *testing.T) {
	resolver := &stubResolver{}
	handler := handleHoldExpireTask(resolver)

	err := handler(context.Background(), asynq.NewTask(TypeHoldExpire, []byte("{bad")))
	assert.Error(t, err)
	assert.Empty(t, resolver.expired)
}
