package subscriber_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/subscriber"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

type mailer struct {
	err error
	to  []string
}

func (m *mailer) SendSubscriptionWelcome(_ context.Context, to string) error {
	m.to = append(m.to, to)
	return m.err
}

func TestSubscribe(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m := &mailer{}
	svc := subscriber.NewService(memory.NewSubscribers(), m, logger)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, &subscriber.SubscribeRequest{Email: "  Ana@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", sub.Email)
	assert.False(t, sub.SubscribedAt.IsZero())
	assert.Equal(t, []string{"ana@example.com"}, m.to)

	_, err = svc.Subscribe(ctx, &subscriber.SubscribeRequest{Email: "ANA@example.com"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Len(t, m.to, 1)
}

func TestSubscribeValidation(t *testing.T) {
	logger, _ := test.NewNullLogger()
	svc := subscriber.NewService(memory.NewSubscribers(), nil, logger)

	for _, address := range []string{"", "   ", "not-an-email", "a@"} {
		_, err := svc.Subscribe(context.Background(), &subscriber.SubscribeRequest{Email: address})
		assert.True(t, apperror.Is(err, apperror.KindValidation), address)
	}
}

func TestWelcomeFailureIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	svc := subscriber.NewService(memory.NewSubscribers(), &mailer{err: errors.New("smtp down")}, logger)

	_, err := svc.Subscribe(context.Background(), &subscriber.SubscribeRequest{Email: "bo@example.com"})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "failed to send subscription welcome", entry.Message)
}
