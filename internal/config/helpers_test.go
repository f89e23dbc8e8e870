package config

import (
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// nopClient satisfies bridge.Client for constructing bridges; it is never called.
type nopClient struct{}

func (*nopClient) Publish(string, byte, bool, any) mqtt.Token { return nil }

func (*nopClient) Subscribe(string, byte, mqtt.MessageHandler) mqtt.Token { return nil }
