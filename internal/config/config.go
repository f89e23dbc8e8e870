// Package config loads the TOML configuration of the asbtool bridge command.
//
// Example:
//
//	[bus]
//	device      = "/dev/ttyUSB0"
//	node_id     = 0x123
//	definitions = "asb_proto.h"
//
//	[mqtt]
//	broker          = "localhost"
//	port            = 1883
//	topic_base      = "asysbus"
//	username        = "asysbus"
//	password        = "topsecret"
//	qos             = 0
//	publish_timeout = "5s"
//
//	[log]
//	level  = "info"
//	format = "json"
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arloliu/go-asb/asb"
	"github.com/arloliu/go-asb/bridge"
	"github.com/arloliu/go-asb/logger"
)

// Duration is a time.Duration written as a string such as "5s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the bridge configuration file.
type Config struct {
	Bus  BusConfig  `toml:"bus"`
	MQTT MQTTConfig `toml:"mqtt"`
	Log  LogConfig  `toml:"log"`
}

// BusConfig describes the link to the bus node.
type BusConfig struct {
	// Device is the serial device; empty means stdin and stdout.
	Device string `toml:"device"`
	// NodeID is the bus address of the bridge.
	NodeID uint32 `toml:"node_id"`
	// Definitions is an optional definitions header used for command names in logs.
	Definitions string `toml:"definitions"`
}

// MQTTConfig describes the broker connection.
type MQTTConfig struct {
	Broker         string   `toml:"broker"`
	Port           int      `toml:"port"`
	TopicBase      string   `toml:"topic_base"`
	Username       string   `toml:"username"`
	Password       string   `toml:"password"`
	CAFile         string   `toml:"ca_file"`
	ClientID       string   `toml:"client_id"`
	QoS            int      `toml:"qos"`
	PublishTimeout Duration `toml:"publish_timeout"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used for keys missing from the file.
func Default() Config {
	return Config{
		Bus: BusConfig{
			NodeID: bridge.DefaultNodeID,
		},
		MQTT: MQTTConfig{
			Broker:         "localhost",
			Port:           bridge.DefaultBrokerPort,
			TopicBase:      bridge.DefaultTopicBase,
			QoS:            int(bridge.DefaultQoS),
			PublishTimeout: Duration{bridge.DefaultPublishTimeout},
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logger.FormatJSON),
		},
	}
}

// Load reads the configuration file at path over the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return finish(cfg, meta)
}

// Parse decodes TOML text over the defaults and validates it.
func Parse(text string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return finish(cfg, meta)
}

func finish(cfg Config, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}

		return Config{}, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}

	cfg.Bus.Device = strings.TrimSpace(cfg.Bus.Device)
	cfg.MQTT.Broker = strings.TrimSpace(cfg.MQTT.Broker)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if c.Bus.NodeID < asb.MinAddress || c.Bus.NodeID > asb.MaxNodeAddress {
		errs = append(errs, fmt.Errorf("bus.node_id: 0x%X out of range [0x001, 0x7FF]", c.Bus.NodeID))
	}
	if c.MQTT.Broker == "" {
		errs = append(errs, errors.New("mqtt.broker: required"))
	}
	if c.MQTT.Port < 1 || c.MQTT.Port > 65535 {
		errs = append(errs, fmt.Errorf("mqtt.port: %d out of range", c.MQTT.Port))
	}
	if strings.Trim(c.MQTT.TopicBase, "/") == "" || strings.ContainsAny(c.MQTT.TopicBase, "+#") {
		errs = append(errs, fmt.Errorf("mqtt.topic_base: invalid %q", c.MQTT.TopicBase))
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, fmt.Errorf("mqtt.qos: %d not in 0..2", c.MQTT.QoS))
	}
	if c.MQTT.PublishTimeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("mqtt.publish_timeout: %v must be positive", c.MQTT.PublishTimeout.Duration))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// LoggerOptions returns the logger options of the [log] section.
// The config must have been validated.
func (c Config) LoggerOptions() []logger.Option {
	level, _ := logger.ParseLevel(c.Log.Level)
	format, _ := logger.ParseFormat(c.Log.Format)

	return []logger.Option{logger.WithLevel(level), logger.WithFormat(format)}
}

// ClientConfig returns the MQTT client settings.
func (c Config) ClientConfig(l logger.Logger) bridge.ClientConfig {
	return bridge.ClientConfig{
		Broker:    c.MQTT.Broker,
		Port:      c.MQTT.Port,
		ClientID:  c.MQTT.ClientID,
		Username:  c.MQTT.Username,
		Password:  c.MQTT.Password,
		CAFile:    c.MQTT.CAFile,
		TopicBase: c.MQTT.TopicBase,
		Logger:    l,
	}
}

// BridgeOptions returns the bridge options of the configuration.
func (c Config) BridgeOptions() []bridge.Option {
	return []bridge.Option{
		bridge.WithNodeID(c.Bus.NodeID),
		bridge.WithTopicBase(c.MQTT.TopicBase),
		bridge.WithQoS(byte(c.MQTT.QoS)), //nolint:gosec
		bridge.WithPublishTimeout(c.MQTT.PublishTimeout.Duration),
	}
}
