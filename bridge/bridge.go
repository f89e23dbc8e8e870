package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/arloliu/go-asb/asb"
	"github.com/arloliu/go-asb/command"
	"github.com/arloliu/go-asb/frame"
	"github.com/arloliu/go-asb/hook"
	"github.com/arloliu/go-asb/internal/util"
	"github.com/arloliu/go-asb/logger"
)

// Client is the part of the paho MQTT client the bridge uses. The connection is managed by
// the caller.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload any) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Bridge relays packets between a bus link and an MQTT broker.
type Bridge struct {
	client Client
	cfg    bridgeConfig
	logger logger.Logger

	busMu sync.Mutex
	bus   io.Writer

	hooks   *hook.Registry
	state   *xsync.MapOf[string, string]
	metrics Metrics

	now func() time.Time
}

// New creates a bridge that publishes to client and writes frames to bus.
func New(client Client, bus io.Writer, opts ...Option) (*Bridge, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if bus == nil {
		return nil, ErrNilBus
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt.apply(&cfg); err != nil {
			return nil, err
		}
	}

	b := &Bridge{
		client: client,
		cfg:    cfg,
		logger: cfg.logger.With("component", "bridge", "node", fmt.Sprintf("0x%03X", cfg.nodeID)),
		bus:    bus,
		hooks:  hook.NewRegistry(),
		state:  xsync.NewMapOf[string, string](),
		now:    time.Now,
	}
	b.registerDefaultHooks()

	return b, nil
}

// Hooks returns the registry packets from the bus are dispatched through.
// Hooks registered by the caller run after the default hooks.
func (b *Bridge) Hooks() *hook.Registry {
	return b.hooks
}

// Metrics returns the counters of the bridge.
func (b *Bridge) Metrics() *Metrics {
	return &b.metrics
}

// NodeID returns the bus address of the bridge.
func (b *Bridge) NodeID() uint32 {
	return b.cfg.nodeID
}

// Topic joins levels below the topic base, e.g. Topic("0122", "get", "switch").
func (b *Bridge) Topic(levels ...string) string {
	return b.cfg.topicBase + "/" + strings.Join(levels, "/")
}

// State returns the payload last published on topic by this bridge.
func (b *Bridge) State(topic string) (string, bool) {
	return b.state.Load(topic)
}

// Start announces the bridge on the LWT topic and subscribes to set messages.
// The client must be connected.
func (b *Bridge) Start() error {
	if err := b.Publish(b.Topic("LWT"), "ON", false); err != nil {
		return err
	}

	topic := b.Topic("+", "set", "#")
	token := b.client.Subscribe(topic, b.cfg.qos, b.onSetMessage)
	if err := b.wait(token); err != nil {
		return fmt.Errorf("bridge: subscribe %s: %w", topic, err)
	}
	b.logger.Info("subscribed", "topic", topic)

	return nil
}

// Run reads frames from r until it is exhausted or ctx is cancelled.
//
// Run returns nil at the end of input and ctx.Err() on cancellation. A read blocked in r
// is not interrupted by cancellation; close r to release it.
func (b *Bridge) Run(ctx context.Context, r io.Reader) error {
	type result struct {
		line frame.Line
		err  error
	}

	results := make(chan result)
	done := make(chan struct{})
	defer close(done)

	go func() {
		sc := frame.NewScanner(r)
		for {
			line, err := sc.Next()
			select {
			case results <- result{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res := <-results:
			if errors.Is(res.err, io.EOF) {
				return nil
			}
			if res.err != nil {
				return fmt.Errorf("bridge: read bus: %w", res.err)
			}
			b.handle(res.line)
		}
	}
}

// HandleLine processes one line read from the bus.
// It returns the decode error if the line is not a frame.
func (b *Bridge) HandleLine(line string) error {
	pkt, err := frame.Decode(line)
	b.handle(frame.Line{Raw: line, Packet: pkt, Err: err})

	return err
}

func (b *Bridge) handle(line frame.Line) {
	b.metrics.LineCount.Add(1)
	if line.Err != nil {
		b.metrics.DecodeErrCount.Add(1)
		b.logger.Debug("not a packet", "line", strconv.Quote(line.Raw), "error", line.Err)

		return
	}
	b.metrics.PacketCount.Add(1)

	pkt := line.Packet
	if b.logger.Level() <= logger.DebugLevel {
		b.logger.Debug("packet received", b.packetFields(pkt)...)
	}
	b.hooks.Dispatch(pkt)
}

func (b *Bridge) packetFields(p asb.Packet) []any {
	fields := []any{"packet", p.String()}
	if code, ok := p.Command(); ok {
		if name, ok := b.cfg.symbols.Command(code); ok {
			fields = append(fields, "command", name)
		}
	}
	if desc, ok := command.Describe(p.Payload); ok {
		fields = append(fields, "description", desc)
	}

	return fields
}

// Send writes the packet to the bus.
func (b *Bridge) Send(p asb.Packet) error {
	b.busMu.Lock()
	err := frame.Write(b.bus, p)
	b.busMu.Unlock()

	if err != nil {
		b.metrics.FrameSendErrCount.Add(1)
		b.logger.Error("failed to write frame", "packet", p.String(), "error", err)

		return fmt.Errorf("bridge: write bus: %w", err)
	}
	b.metrics.FrameSendCount.Add(1)
	b.logger.Debug("frame sent", "packet", p.String())

	return nil
}

// Publish publishes payload on topic and waits for the broker. On success the payload is
// recorded as the topic's state.
func (b *Bridge) Publish(topic, payload string, retained bool) error {
	token := b.client.Publish(topic, b.cfg.qos, retained, payload)
	if err := b.wait(token); err != nil {
		b.metrics.PublishErrCount.Add(1)
		b.logger.Warn("MQTT publish failed", "topic", topic, "error", err)

		return fmt.Errorf("bridge: publish %s: %w", topic, err)
	}
	b.metrics.PublishCount.Add(1)
	b.state.Store(topic, payload)
	b.logger.Debug("MQTT publish", "topic", topic, "payload", payload, "retained", retained)

	return nil
}

func (b *Bridge) wait(token mqtt.Token) error {
	if !token.WaitTimeout(b.cfg.publishTimeout) {
		return ErrPublishTimeout
	}

	return token.Error()
}

// addressLevel formats an address as a topic level.
func addressLevel(addr uint32) string {
	return fmt.Sprintf("%04x", addr)
}

func (b *Bridge) registerDefaultHooks() {
	b.hooks.Register(hook.ForCommand(asb.Cmd1Bit), func(p asb.Packet) {
		if p.Len() == 2 {
			_ = b.Publish(b.Topic(addressLevel(p.Target), "get", "switch"), strconv.Itoa(int(p.Payload[1])), true)
		}
	})

	b.hooks.Register(hook.ForCommand(asb.CmdPercent), func(p asb.Packet) {
		if p.Len() == 2 {
			_ = b.Publish(b.Topic(addressLevel(p.Target), "get", "level"), strconv.Itoa(int(p.Payload[1])), true)
		}
	})

	b.hooks.Register(hook.ForCommand(asb.CmdBoot), func(p asb.Packet) {
		if p.Len() == 1 {
			_ = b.Publish(b.Topic(addressLevel(p.Source), "lastboot"), strconv.FormatInt(b.now().Unix(), 10), false)
		}
	})

	b.hooks.Register(hook.MatchAll, func(p asb.Packet) {
		if m, ok := command.Measure(p.Payload); ok {
			_ = b.Publish(b.Topic(addressLevel(p.Source), "get", m.Quantity), m.FormatValue(), true)
		}
	})

	ping := hook.Filter{Type: asb.Unicast, Target: b.cfg.nodeID, Port: hook.AnyPort, Command: int(asb.CmdPing)}
	b.hooks.Register(ping, func(p asb.Packet) {
		_ = b.Send(asb.NewUnicast(p.Source, b.cfg.nodeID, p.Port, command.Pong()...))
	})
}

// onSetMessage handles messages on "<base>/+/set/#".
func (b *Bridge) onSetMessage(_ mqtt.Client, msg mqtt.Message) {
	b.metrics.SetCount.Add(1)
	if err := b.HandleSet(msg.Topic(), msg.Payload()); err != nil {
		b.metrics.SetErrCount.Add(1)
		b.logger.Warn("set message rejected", "topic", msg.Topic(), "payload", string(msg.Payload()), "error", err)
	}
}

// HandleSet applies a set message: the state is sent to the bus and echoed to the get topic.
func (b *Bridge) HandleSet(topic string, payload []byte) error {
	rest, ok := strings.CutPrefix(topic, b.cfg.topicBase+"/")
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidSetTopic, topic)
	}
	levels := strings.Split(rest, "/")
	if len(levels) != 3 || levels[1] != "set" {
		return fmt.Errorf("%w: %s", ErrInvalidSetTopic, topic)
	}

	addr, err := util.ParseHex(levels[0], 16)
	if err != nil || addr == asb.InvalidAddress {
		return fmt.Errorf("%w: address %q", ErrInvalidSetTopic, levels[0])
	}

	var code byte
	maxValue := 0xFF
	switch levels[2] {
	case "switch":
		code = asb.Cmd1Bit
	case "level":
		code = asb.CmdPercent
		maxValue = 100
	default:
		return fmt.Errorf("%w: %s", ErrInvalidSetTopic, topic)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(payload)))
	if err != nil || value < 0 || value > maxValue {
		return fmt.Errorf("%w: %q for %s", ErrInvalidSetValue, payload, levels[2])
	}

	if err := b.Send(asb.NewMulticast(uint32(addr), b.cfg.nodeID, code, byte(value))); err != nil {
		return err
	}

	return b.Publish(b.Topic(levels[0], "get", levels[2]), strconv.Itoa(value), true)
}
