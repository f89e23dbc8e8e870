package bridge

import (
	"fmt"
	"strings"
	"time"

	"github.com/arloliu/go-asb/asb"
	"github.com/arloliu/go-asb/logger"
	"github.com/arloliu/go-asb/symbol"
)

// Default option values.
const (
	DefaultNodeID         uint32 = 0x123
	DefaultTopicBase             = "asysbus"
	DefaultQoS            byte   = 0
	DefaultPublishTimeout        = 5 * time.Second
)

type bridgeConfig struct {
	nodeID         uint32
	topicBase      string
	qos            byte
	publishTimeout time.Duration
	symbols        *symbol.Table
	logger         logger.Logger
}

func defaultConfig() bridgeConfig {
	return bridgeConfig{
		nodeID:         DefaultNodeID,
		topicBase:      DefaultTopicBase,
		qos:            DefaultQoS,
		publishTimeout: DefaultPublishTimeout,
		symbols:        symbol.Default(),
		logger:         logger.GetLogger(),
	}
}

// Option is a functional option for configuring a Bridge.
type Option interface {
	apply(*bridgeConfig) error
}

type optFunc func(*bridgeConfig) error

func (f optFunc) apply(cfg *bridgeConfig) error { return f(cfg) }

// WithNodeID sets the bus address the bridge sends from and answers PINGs on.
// Must be in [0x001, 0x7FF]. The default is 0x123.
func WithNodeID(id uint32) Option {
	return optFunc(func(cfg *bridgeConfig) error {
		if id < asb.MinAddress || id > asb.MaxNodeAddress {
			return fmt.Errorf("%w: node ID 0x%X out of range [0x%03X, 0x%03X]",
				ErrInvalidOption, id, asb.MinAddress, asb.MaxNodeAddress)
		}
		cfg.nodeID = id

		return nil
	})
}

// WithTopicBase sets the first topic level of every topic. Surrounding slashes are removed.
func WithTopicBase(base string) Option {
	return optFunc(func(cfg *bridgeConfig) error {
		base = strings.Trim(base, "/")
		if base == "" || strings.ContainsAny(base, "+#") {
			return fmt.Errorf("%w: topic base %q", ErrInvalidOption, base)
		}
		cfg.topicBase = base

		return nil
	})
}

// WithQoS sets the MQTT quality of service for publishing and subscribing. Must be 0, 1 or 2.
func WithQoS(qos byte) Option {
	return optFunc(func(cfg *bridgeConfig) error {
		if qos > 2 {
			return fmt.Errorf("%w: QoS %d", ErrInvalidOption, qos)
		}
		cfg.qos = qos

		return nil
	})
}

// WithPublishTimeout sets how long to wait for the broker to acknowledge a publish or
// subscribe.
func WithPublishTimeout(d time.Duration) Option {
	return optFunc(func(cfg *bridgeConfig) error {
		if d <= 0 {
			return fmt.Errorf("%w: publish timeout %v", ErrInvalidOption, d)
		}
		cfg.publishTimeout = d

		return nil
	})
}

// WithSymbols sets the symbol table used to name commands in log records.
func WithSymbols(t *symbol.Table) Option {
	return optFunc(func(cfg *bridgeConfig) error {
		if t != nil {
			cfg.symbols = t
		}

		return nil
	})
}

// WithLogger sets the logger of the bridge.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *bridgeConfig) error {
		if l != nil {
			cfg.logger = l
		}

		return nil
	})
}
