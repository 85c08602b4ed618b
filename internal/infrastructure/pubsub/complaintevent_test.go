package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

func TestComplaintEventMessage_KeepsScope(t *testing.T) {
	at := time.UnixMilli(1700000000123).UTC()
	event := complaint.ChangeEvent{
		Type:       complaint.ChangeApproved,
		SID:        "cmp_abc",
		Scope:      complaint.Scope{SubmitterID: 4, Visibility: vo.VisibilityPrivate, HostelType: uservo.WingMale},
		Status:     vo.StatusApproved,
		Votes:      -2,
		OccurredAt: at,
	}

	decoded, err := toMessage(event, "i-1").toEvent()
	require.NoError(t, err)
	assert.Equal(t, event, decoded)

	_, err = ComplaintEventMessage{Visibility: "secret", Status: "submitted"}.toEvent()
	assert.Error(t, err)
}

func TestRedisComplaintEventBus_PublishSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	bus := NewRedisComplaintEventBus(client, "", logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan complaint.ChangeEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- bus.Subscribe(ctx, func(event complaint.ChangeEvent) {
			received <- event
		})
	}()

	require.Eventually(t, func() bool {
		return len(mr.PubSubChannels("")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	event := complaint.ChangeEvent{
		Type:       complaint.ChangeVoted,
		SID:        "cmp_xyz",
		Scope:      complaint.Scope{SubmitterID: 1, Visibility: vo.VisibilityPublic, HostelType: uservo.WingFemale},
		Status:     vo.StatusSubmitted,
		Votes:      5,
		OccurredAt: time.UnixMilli(1700000000000).UTC(),
	}
	require.NoError(t, bus.Publish(ctx, event))

	select {
	case got := <-received:
		assert.Equal(t, event, got)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}

func TestRedisComplaintEventBus_DeliversInPublishOrder(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	bus := NewRedisComplaintEventBus(client, "", logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const total = 50
	received := make(chan int, total)
	go func() {
		_ = bus.Subscribe(ctx, func(event complaint.ChangeEvent) {
			if event.Votes == 0 {
				panic("handler panic must not stop the subscriber")
			}
			received <- event.Votes
		})
	}()

	require.Eventually(t, func() bool {
		return len(mr.PubSubChannels("")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	event := complaint.ChangeEvent{
		Type:       complaint.ChangeVoted,
		SID:        "cmp_order",
		Scope:      complaint.Scope{SubmitterID: 1, Visibility: vo.VisibilityPublic, HostelType: uservo.WingMale},
		Status:     vo.StatusSubmitted,
		OccurredAt: time.UnixMilli(1700000000000).UTC(),
	}
	for votes := 0; votes <= total; votes++ {
		event.Votes = votes
		require.NoError(t, bus.Publish(ctx, event))
	}

	got := make([]int, 0, total)
	for len(got) < total {
		select {
		case v := <-received:
			got = append(got, v)
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of %d events delivered", len(got), total)
		}
	}
	for i, v := range got {
		assert.Equal(t, i+1, v)
	}
}
