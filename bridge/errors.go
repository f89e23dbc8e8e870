package bridge

import "errors"

var (
	// ErrNilClient indicates that New was called without an MQTT client.
	ErrNilClient = errors.New("bridge: nil MQTT client")
	// ErrNilBus indicates that New was called without a bus writer.
	ErrNilBus = errors.New("bridge: nil bus writer")
	// ErrInvalidOption indicates an option value outside its valid range.
	ErrInvalidOption = errors.New("bridge: invalid option")
	// ErrPublishTimeout indicates that the broker did not acknowledge an operation in time.
	ErrPublishTimeout = errors.New("bridge: MQTT operation timed out")
	// ErrInvalidSetTopic indicates a set message whose topic has no meaning to the bridge.
	ErrInvalidSetTopic = errors.New("bridge: invalid set topic")
	// ErrInvalidSetValue indicates a set message whose payload is not a valid state.
	ErrInvalidSetValue = errors.New("bridge: invalid set value")
)
