package bridge

import (
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock

	mu       sync.Mutex
	callback mqtt.MessageHandler
}

var _ Client = (*mockClient)(nil)

func (m *mockClient) Publish(topic string, qos byte, retained bool, payload any) mqtt.Token {
	args := m.Called(topic, qos, retained, payload)
	return args.Get(0).(mqtt.Token)
}

func (m *mockClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	m.mu.Lock()
	m.callback = callback
	m.mu.Unlock()

	args := m.Called(topic, qos)
	return args.Get(0).(mqtt.Token)
}

func (m *mockClient) deliver(msg mqtt.Message) {
	m.mu.Lock()
	cb := m.callback
	m.mu.Unlock()

	cb(nil, msg)
}

// fakeToken is an already completed token.
type fakeToken struct {
	err     error
	timeout bool
}

var _ mqtt.Token = (*fakeToken)(nil)

func okToken() *fakeToken { return &fakeToken{} }

func (t *fakeToken) Wait() bool                     { return !t.timeout }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.timeout }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if !t.timeout {
		close(ch)
	}

	return ch
}

type fakeMessage struct {
	topic   string
	payload []byte
}

var _ mqtt.Message = (*fakeMessage)(nil)

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 0 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}
