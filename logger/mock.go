package logger

import (
	"sync/atomic"

	"github.com/stretchr/testify/mock"
)

// MockLogger records log calls for assertions with testify/mock.
//
// Debug, Info, Warn, Error and Fatal are recorded as Called(msg, keysAndValues), so
// expectations look like m.On("Warn", "msg", mock.Anything). SetLevel is recorded too.
// Level is not recorded; it reports the level given to NewMockLogger or the last SetLevel.
// With is not recorded either and returns the mock itself, so records of derived loggers
// land on the same mock.
type MockLogger struct {
	mock.Mock

	level atomic.Int32
}

var _ Logger = (*MockLogger)(nil)

// NewMockLogger returns a mock that reports level from Level.
func NewMockLogger(level Level) *MockLogger {
	m := &MockLogger{}
	m.level.Store(int32(level))

	return m
}

func (m *MockLogger) Debug(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Info(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Warn(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Error(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Fatal(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) SetLevel(level Level) {
	m.Called(level)
	m.level.Store(int32(level))
}

func (m *MockLogger) Level() Level {
	return Level(m.level.Load())
}

func (m *MockLogger) With(...any) Logger {
	return m
}

// Field returns the value following key in keysAndValues, as passed to a log call.
func Field(keysAndValues []any, key string) (any, bool) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok && k == key {
			return keysAndValues[i+1], true
		}
	}

	return nil, false
}
