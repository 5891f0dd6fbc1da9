package main

import (
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"i4.energy/across/atgw/at"
	"i4.energy/across/atgw/uat"
)

// urcPrefixes are the unsolicited result codes the gateway watches.
var urcPrefixes = []string{
	at.UrcNewMsg,
	at.UrcMessageReport,
	at.UrcSignalStrength,
	at.UrcRegistration,
	at.UrcCall,
}

// URCBridge republishes unsolicited result codes on MQTT.
type URCBridge struct {
	client mqtt.Client
	topic  string
	logger *slog.Logger
}

// NewURCBridge connects to the broker. The returned bridge is ready for
// Register.
func NewURCBridge(broker, topic string, logger *slog.Logger) (*URCBridge, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("atgw").
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if tok := client.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, tok.Error()
	}

	return &URCBridge{client: client, topic: topic, logger: logger}, nil
}

// Register installs a URC handler for every watched prefix.
func (b *URCBridge) Register(core *uat.Handle) error {
	for _, prefix := range urcPrefixes {
		p := prefix
		err := core.RegisterURC(p, func(args []byte) {
			b.publish(p, args)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// publish forwards one URC line. Runs on the dispatcher goroutine, so
// delivery is fire-and-forget; the handler must not block.
func (b *URCBridge) publish(prefix string, args []byte) {
	sub := strings.Trim(prefix, "+:")
	payload := strings.TrimRight(string(args), "\r\n")
	tok := b.client.Publish(b.topic+"/"+sub, 0, false, payload)
	go func() {
		if tok.Wait() && tok.Error() != nil {
			b.logger.Warn("URC publish failed", "error", tok.Error(), "prefix", prefix)
		}
	}()
}

// Close disconnects from the broker.
func (b *URCBridge) Close() {
	b.client.Disconnect(250)
}
