package player

import (
	"context"
	"sync"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/mock"
)

// mockConn is a WebsocketConn that replays scripted client frames and keeps
// every frame the player writes back.
type mockConn struct {
	mock.Mock

	mu      sync.Mutex
	written []string
}

// newMockConn queues frames for Read, then fails every further Read with
// closeErr. Writes and the final close always succeed.
func newMockConn(frames []string, closeErr error) *mockConn {
	conn := &mockConn{}
	for _, frame := range frames {
		conn.On("Read", mock.Anything).Return(websocket.MessageText, []byte(frame), nil).Once()
	}
	conn.On("Read", mock.Anything).Return(websocket.MessageType(0), []byte(nil), closeErr)
	conn.On("Write", mock.Anything, websocket.MessageText, mock.Anything).Return(nil)
	conn.On("Close", websocket.StatusNormalClosure, "going away").Return(nil)
	return conn
}

func (m *mockConn) Read(ctx context.Context) (websocket.MessageType, []byte, error) {
	args := m.Called(ctx)
	return args.Get(0).(websocket.MessageType), args.Get(1).([]byte), args.Error(2)
}

func (m *mockConn) Write(ctx context.Context, messageType websocket.MessageType, data []byte) error {
	m.mu.Lock()
	m.written = append(m.written, string(data))
	m.mu.Unlock()
	return m.Called(ctx, messageType, data).Error(0)
}

func (m *mockConn) Close(code websocket.StatusCode, reason string) error {
	return m.Called(code, reason).Error(0)
}

// Written returns the frames sent to the client so far.
func (m *mockConn) Written() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.written...)
}
