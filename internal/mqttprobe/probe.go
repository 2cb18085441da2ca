package mqttprobe

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/markusressel/heat2go/internal/ui"
)

const (
	// DefaultHost is used by the device when no broker host is configured.
	DefaultHost = "demo.thingsboard.io"
	DefaultPort = 1883

	keepAlive = 60 * time.Second
)

var ErrTimeout = errors.New("timed out connecting to broker")

// BrokerUrl builds the broker address the same way the device does,
// falling back to DefaultHost and DefaultPort.
func BrokerUrl(host string, port int) *url.URL {
	if len(host) <= 0 {
		host = DefaultHost
	}
	if port <= 0 {
		port = DefaultPort
	}
	return &url.URL{
		Scheme: "tcp",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
}

// Probe connects to the broker using token as username and disconnects again.
func Probe(ctx context.Context, host string, port int, token string, timeout time.Duration) error {
	brokerUrl := BrokerUrl(host, port)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerUrl.String())
	opts.SetClientID(fmt.Sprintf("heat2go-probe-%d", os.Getpid()))
	opts.SetUsername(token)
	opts.SetKeepAlive(keepAlive)
	opts.SetConnectTimeout(timeout)
	opts.SetAutoReconnect(false)

	client := mqtt.NewClient(opts)
	ui.Debug("Connecting to MQTT broker %s", brokerUrl)
	return probe(ctx, client, brokerUrl, timeout)
}

func probe(ctx context.Context, client mqtt.Client, brokerUrl *url.URL, timeout time.Duration) error {
	connectToken := client.Connect()
	select {
	case <-connectToken.Done():
	case <-ctx.Done():
		// abort the pending attempt, a late connect must not stay open
		client.Disconnect(0)
		return ctx.Err()
	case <-time.After(timeout):
		client.Disconnect(0)
		return fmt.Errorf("%w: %s", ErrTimeout, brokerUrl)
	}
	if err := connectToken.Error(); err != nil {
		return fmt.Errorf("connecting to %s: %w", brokerUrl, err)
	}

	client.Disconnect(250 /* milliseconds */)
	return nil
}
