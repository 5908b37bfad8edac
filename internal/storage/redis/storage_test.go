package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/dietpanel/internal/storage"
)

// mockClient implements Client on top of a map
type mockClient struct {
	data      map[string]string
	published []string
	channels  []string
	err       error
}

func newMockClient() *mockClient {
	return &mockClient{data: make(map[string]string)}
}

func (m *mockClient) Get(ctx context.Context, key string) *goredis.StringCmd {
	cmd := goredis.NewStringCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	val, ok := m.data[key]
	if !ok {
		cmd.SetErr(goredis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (m *mockClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	m.data[key] = value.(string)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockClient) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	cmd := goredis.NewIntCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (m *mockClient) Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd {
	cmd := goredis.NewIntCmd(ctx)
	m.channels = append(m.channels, channel)
	m.published = append(m.published, string(message.([]byte)))
	cmd.SetVal(1)
	return cmd
}

func (m *mockClient) Subscribe(ctx context.Context, channels ...string) *goredis.PubSub {
	return nil
}

func TestStorage_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	client := newMockClient()
	s := New(client)

	_, err := s.Get(ctx, "dp_auth_token")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "dp_auth_token", "demo-token"))
	assert.Equal(t, "demo-token", client.data["dietpanel:dp_auth_token"])

	got, err := s.Get(ctx, "dp_auth_token")
	require.NoError(t, err)
	assert.Equal(t, "demo-token", got)

	require.NoError(t, s.Remove(ctx, "dp_auth_token"))
	_, err = s.Get(ctx, "dp_auth_token")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestStorage_PublishesOnlyRealChanges(t *testing.T) {
	ctx := context.Background()
	client := newMockClient()
	s := New(client, WithPrefix("test:"))

	require.NoError(t, s.Set(ctx, "dp_auth_user", "a@example.com"))
	require.NoError(t, s.Set(ctx, "dp_auth_user", "a@example.com"))
	require.NoError(t, s.Remove(ctx, "missing"))
	require.NoError(t, s.Remove(ctx, "dp_auth_user"))

	require.Len(t, client.published, 2)
	assert.Equal(t, []string{"test:changes", "test:changes"}, client.channels)

	var change storage.Change
	require.NoError(t, json.Unmarshal([]byte(client.published[0]), &change))
	assert.Equal(t, storage.Change{Key: "dp_auth_user", Origin: s.Origin()}, change)
}

func TestStorage_ClientErrors(t *testing.T) {
	ctx := context.Background()
	client := newMockClient()
	client.err = errors.New("connection refused")
	s := New(client)

	_, err := s.Get(ctx, "dp_auth_token")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrKeyNotFound)

	assert.Error(t, s.Set(ctx, "dp_auth_token", "x"))
	assert.Error(t, s.Remove(ctx, "dp_auth_token"))
	assert.Empty(t, client.published)
}

func TestStorage_Forward(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := New(newMockClient())

	own, err := json.Marshal(storage.Change{Key: "dp_auth_token", Origin: s.Origin()})
	require.NoError(t, err)
	foreign, err := json.Marshal(storage.Change{Key: "dp_auth_expires_at", Origin: "other-tab"})
	require.NoError(t, err)

	msgs := make(chan *goredis.Message, 3)
	msgs <- &goredis.Message{Payload: "not json"}
	msgs <- &goredis.Message{Payload: string(own)}
	msgs <- &goredis.Message{Payload: string(foreign)}
	close(msgs)

	out := make(chan storage.Change, 3)
	s.forward(ctx, msgs, out)
	close(out)

	var got []storage.Change
	for c := range out {
		got = append(got, c)
	}
	assert.Equal(t, []storage.Change{{Key: "dp_auth_expires_at", Origin: "other-tab"}}, got)
}

func TestDecodeChange(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    storage.Change
		wantErr bool
	}{
		{
			name:    "valid",
			payload: `{"key":"dp_auth_user","origin":"tab-1"}`,
			want:    storage.Change{Key: "dp_auth_user", Origin: "tab-1"},
		},
		{
			name:    "missing key",
			payload: `{"origin":"tab-1"}`,
			wantErr: true,
		},
		{
			name:    "garbage",
			payload: `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeChange(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
