//go:build integration

package mqtt

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/geocontrol/geocontrol-core/internal/infrastructure/config"
)

// Integration tests for broker connectivity and message delivery.
// These tests require a running MQTT broker at 127.0.0.1:1883.
//
// Run with:
//   go test -tags=integration -v ./internal/infrastructure/mqtt/...

func integrationConfig() config.IngestConfig {
	return config.IngestConfig{
		Enabled: true,
		Broker: config.IngestBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "geocontrol-integration-test",
			TLS:      false,
		},
		QoS:       1,
		TopicRoot: "geocontrol-test",
		Reconnect: config.IngestReconnectCfg{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

func TestIntegration_ConnectAndHealth(t *testing.T) {
	client, err := Connect(integrationConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestIntegration_MeasurementRoundtrip(t *testing.T) {
	client, err := Connect(integrationConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	topics := client.Topics()
	received := make(chan []byte, 1)
	var once sync.Once

	err = client.Subscribe(topics.AllMeasurements(), 1, func(topic string, payload []byte) error {
		network, gateway, sensor, parseErr := topics.ParseMeasurementTopic(topic)
		if parseErr != nil {
			t.Errorf("ParseMeasurementTopic(%q) error = %v", topic, parseErr)
			return parseErr
		}
		if network != "NET01" || gateway == "" || sensor == "" {
			t.Errorf("unexpected chain %q/%q/%q", network, gateway, sensor)
		}
		once.Do(func() { received <- payload })
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	payload := []byte(`[{"createdAt":"2025-02-18T10:00:00Z","value":1.5}]`)
	topic := topics.SensorMeasurements("NET01", "94:3F:BE:4C:4A:79", "71:B1:CE:01:C6:A9")
	if err := client.Publish(topic, payload, 1, false); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case got := <-received:
		if string(got) != string(payload) {
			t.Errorf("payload = %s, want %s", got, payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestIntegration_SubscriptionTracking(t *testing.T) {
	client, err := Connect(integrationConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	topics := client.Topics()
	handler := func(_ string, _ []byte) error { return nil }

	if err := client.Subscribe(topics.AllMeasurements(), 1, handler); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if err := client.Subscribe(topics.AllGatewayStatus(), 1, handler); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if got := client.SubscriptionCount(); got != 2 {
		t.Errorf("SubscriptionCount() = %d, want 2", got)
	}

	if err := client.Unsubscribe(topics.AllGatewayStatus()); err != nil {
		t.Fatalf("Unsubscribe() error = %v", err)
	}
	if client.HasSubscription(topics.AllGatewayStatus()) {
		t.Error("subscription still tracked after Unsubscribe()")
	}
}
