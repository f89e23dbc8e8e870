package bridge

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/arloliu/go-asb/logger"
)

// DefaultBrokerPort is the MQTT port used when ClientConfig.Port is zero.
const DefaultBrokerPort = 1883

// ClientConfig holds the settings of the paho MQTT client built by NewClient.
type ClientConfig struct {
	// Broker is a host name or a full broker URL such as "ssl://broker:8883".
	Broker string
	// Port is used when Broker is a host name.
	Port int
	// ClientID defaults to "asb-bridge-<uuid>".
	ClientID string
	Username string
	Password string
	// CAFile is a PEM bundle of trusted CAs; setting it enables TLS.
	CAFile string
	// TopicBase is the base of the LWT topic, DefaultTopicBase if empty.
	TopicBase string
	// KeepAlive defaults to 60 seconds.
	KeepAlive time.Duration
	Logger    logger.Logger
}

// NewClient builds an auto-reconnecting paho client. The client is not connected.
func NewClient(cfg ClientConfig) (mqtt.Client, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("%w: empty broker", ErrInvalidOption)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL(cfg))

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "asb-bridge-" + uuid.NewString()
	}
	opts.SetClientID(clientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	if cfg.CAFile != "" {
		tlsConfig, err := loadTLSConfig(cfg.CAFile)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsConfig)
	}

	base := strings.Trim(cfg.TopicBase, "/")
	if base == "" {
		base = DefaultTopicBase
	}
	opts.SetWill(base+"/LWT", "OFF", 0, false)

	keepAlive := cfg.KeepAlive
	if keepAlive <= 0 {
		keepAlive = 60 * time.Second
	}
	opts.SetKeepAlive(keepAlive)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetCleanSession(true)

	log := cfg.Logger
	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Info("MQTT connected", "client_id", clientID)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn("MQTT connection lost", "error", err)
	})

	return mqtt.NewClient(opts), nil
}

// Connect connects the client and waits at most timeout for the broker.
func Connect(client mqtt.Client, timeout time.Duration) error {
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("bridge: connect: %w", ErrPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("bridge: connect: %w", err)
	}

	return nil
}

func brokerURL(cfg ClientConfig) string {
	if strings.Contains(cfg.Broker, "://") {
		return cfg.Broker
	}

	scheme := "tcp"
	if cfg.CAFile != "" {
		scheme = "ssl"
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultBrokerPort
	}

	return fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker, port)
}

func loadTLSConfig(caFile string) (*tls.Config, error) {
	pem, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("bridge: read CA file: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("bridge: no certificates found in CA file")
	}

	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    pool,
	}, nil
}
