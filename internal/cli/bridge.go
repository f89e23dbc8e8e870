package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arloliu/go-asb/bridge"
	"github.com/arloliu/go-asb/internal/config"
	"github.com/arloliu/go-asb/logger"
	"github.com/arloliu/go-asb/symbol"
)

func newBridgeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Relay switch, level, boot and sensor messages between the bus and an MQTT broker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runBridge(ctx, cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")

	return cmd
}

func runBridge(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	log := logger.New(append(cfg.LoggerOptions(), logger.WithOutput(cmd.ErrOrStderr()))...)
	logger.SetDefault(log)

	symbols := symbol.Default()
	if cfg.Bus.Definitions != "" {
		table, err := symbol.LoadFile(cfg.Bus.Definitions)
		if err != nil {
			log.Warn("definitions not loaded, command names unavailable", "path", cfg.Bus.Definitions, "error", err)
		}
		symbols = table
	}

	var (
		busIn  io.Reader = cmd.InOrStdin()
		busOut io.Writer = cmd.OutOrStdout()
	)
	if cfg.Bus.Device != "" {
		// line settings (baud rate etc.) are configured outside, e.g. with stty
		dev, err := os.OpenFile(cfg.Bus.Device, os.O_RDWR, 0)
		if err != nil {
			return err
		}
		defer dev.Close()
		busIn, busOut = dev, dev
	}

	client, err := bridge.NewClient(cfg.ClientConfig(log))
	if err != nil {
		return err
	}
	if err := bridge.Connect(client, cfg.MQTT.PublishTimeout.Duration); err != nil {
		return err
	}
	defer client.Disconnect(250)

	opts := append(cfg.BridgeOptions(), bridge.WithSymbols(symbols), bridge.WithLogger(log))
	b, err := bridge.New(client, busOut, opts...)
	if err != nil {
		return err
	}
	if err := b.Start(); err != nil {
		return err
	}

	log.Info("bridge running", "device", cfg.Bus.Device, "broker", cfg.MQTT.Broker, "topic_base", cfg.MQTT.TopicBase)
	err = b.Run(ctx, busIn)
	m := b.Metrics()
	log.Info("bridge stopped",
		"lines", m.LineCount.Load(),
		"packets", m.PacketCount.Load(),
		"publishes", m.PublishCount.Load(),
		"frames_sent", m.FrameSendCount.Load(),
	)
	if ctx.Err() != nil {
		return nil
	}

	return err
}
