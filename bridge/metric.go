package bridge

import "sync/atomic"

// Metrics contains atomic counters of a bridge.
// Metrics can be used as the value of a prometheus CounterFunc.
type Metrics struct {
	// LineCount indicates the number of non-blank lines read from the bus.
	LineCount atomic.Uint64
	// PacketCount indicates the number of lines decoded into packets.
	PacketCount atomic.Uint64
	// DecodeErrCount indicates the number of lines that were not frames.
	DecodeErrCount atomic.Uint64

	// PublishCount indicates the number of messages the broker acknowledged.
	PublishCount atomic.Uint64
	// PublishErrCount indicates the number of failed or timed out publishes.
	PublishErrCount atomic.Uint64

	// SetCount indicates the number of set messages received from the broker.
	SetCount atomic.Uint64
	// SetErrCount indicates the number of set messages that were rejected.
	SetErrCount atomic.Uint64

	// FrameSendCount indicates the number of frames written to the bus.
	FrameSendCount atomic.Uint64
	// FrameSendErrCount indicates the number of failed bus writes.
	FrameSendErrCount atomic.Uint64
}
