package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeClient records messages instead of writing to a network connection.
type fakeClient struct {
	messages [][]byte
	fail     bool
	closed   bool
}

func (c *fakeClient) Send(message []byte) bool {
	if c.fail {
		return false
	}
	c.messages = append(c.messages, message)
	return true
}

func (c *fakeClient) Close() { c.closed = true }

func TestBroadcast_DeliversToUserClients(t *testing.T) {
	h := NewHub()
	c1 := &fakeClient{}
	c2 := &fakeClient{}
	other := &fakeClient{}
	h.Register("u-1", c1)
	h.Register("u-1", c2)
	h.Register("u-2", other)

	h.Broadcast("u-1", []byte("hello"))

	require.Len(t, c1.messages, 1)
	require.Equal(t, "hello", string(c1.messages[0]))
	require.Len(t, c2.messages, 1)
	require.Empty(t, other.messages, "other users receive nothing")
}

func TestBroadcast_UnknownUserIsNoOp(t *testing.T) {
	h := NewHub()
	h.Broadcast("nobody", []byte("hello"))
}

func TestBroadcast_FailedSendDoesNotBlockOthers(t *testing.T) {
	h := NewHub()
	broken := &fakeClient{fail: true}
	healthy := &fakeClient{}
	h.Register("u-1", broken)
	h.Register("u-1", healthy)

	h.Broadcast("u-1", []byte("hello"))

	require.Len(t, healthy.messages, 1)
	require.Empty(t, broken.messages)
}

func TestUnregister_RemovesClient(t *testing.T) {
	h := NewHub()
	c := &fakeClient{}
	h.Register("u-1", c)
	h.Unregister("u-1", c)

	h.Broadcast("u-1", []byte("hello"))
	require.Empty(t, c.messages)
}
