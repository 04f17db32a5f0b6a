package mqtt

import (
	"errors"
	"testing"
)

// =============================================================================
// Topic Builder Tests
// =============================================================================

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() string
		expected string
	}{
		{
			name: "SensorMeasurements",
			builder: func() string {
				return Topics{}.SensorMeasurements("NET01", "94:3F:BE:4C:4A:79", "71:B1:CE:01:C6:A9")
			},
			expected: "geocontrol/measurements/NET01/94:3F:BE:4C:4A:79/71:B1:CE:01:C6:A9",
		},
		{
			name: "GatewayStatus",
			builder: func() string {
				return Topics{}.GatewayStatus("94:3F:BE:4C:4A:79")
			},
			expected: "geocontrol/gateways/94:3F:BE:4C:4A:79/status",
		},
		{
			name: "SystemStatus",
			builder: func() string {
				return Topics{}.SystemStatus()
			},
			expected: "geocontrol/system/status",
		},
		{
			name: "AllMeasurements",
			builder: func() string {
				return Topics{}.AllMeasurements()
			},
			expected: "geocontrol/measurements/+/+/+",
		},
		{
			name: "AllGatewayStatus",
			builder: func() string {
				return Topics{}.AllGatewayStatus()
			},
			expected: "geocontrol/gateways/+/status",
		},
		{
			name: "CustomRoot",
			builder: func() string {
				return Topics{Root: "staging"}.SystemStatus()
			},
			expected: "staging/system/status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.builder(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseMeasurementTopic(t *testing.T) {
	topics := Topics{}

	network, gateway, sensor, err := topics.ParseMeasurementTopic(
		"geocontrol/measurements/NET01/94:3F:BE:4C:4A:79/71:B1:CE:01:C6:A9")
	if err != nil {
		t.Fatalf("ParseMeasurementTopic() error = %v", err)
	}
	if network != "NET01" || gateway != "94:3F:BE:4C:4A:79" || sensor != "71:B1:CE:01:C6:A9" {
		t.Errorf("chain = %q/%q/%q", network, gateway, sensor)
	}

	invalid := []string{
		"",
		"geocontrol/system/status",
		"geocontrol/measurements/NET01",
		"geocontrol/measurements/NET01/94:3F:BE:4C:4A:79",
		"geocontrol/measurements/NET01//71:B1:CE:01:C6:A9",
		"geocontrol/measurements/NET01/94:3F:BE:4C:4A:79/71:B1:CE:01:C6:A9/extra",
		"other/measurements/NET01/94:3F:BE:4C:4A:79/71:B1:CE:01:C6:A9",
	}
	for _, topic := range invalid {
		if _, _, _, parseErr := topics.ParseMeasurementTopic(topic); !errors.Is(parseErr, ErrInvalidTopic) {
			t.Errorf("ParseMeasurementTopic(%q) error = %v, want ErrInvalidTopic", topic, parseErr)
		}
	}
}

func TestParseMeasurementTopicCustomRoot(t *testing.T) {
	topics := Topics{Root: "staging"}

	network, _, _, err := topics.ParseMeasurementTopic(
		"staging/measurements/NET01/94:3F:BE:4C:4A:79/71:B1:CE:01:C6:A9")
	if err != nil {
		t.Fatalf("ParseMeasurementTopic() error = %v", err)
	}
	if network != "NET01" {
		t.Errorf("network = %q", network)
	}

	// The default root no longer matches.
	if _, _, _, parseErr := topics.ParseMeasurementTopic(
		"geocontrol/measurements/NET01/94:3F:BE:4C:4A:79/71:B1:CE:01:C6:A9"); !errors.Is(parseErr, ErrInvalidTopic) {
		t.Errorf("default-root topic: error = %v, want ErrInvalidTopic", parseErr)
	}
}

// =============================================================================
// Input Validation Tests
// =============================================================================

func TestPublishValidation(t *testing.T) {
	c := &Client{}

	if err := c.Publish("", []byte("x"), 1, false); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Publish("geocontrol/system/status", []byte("x"), 3, false); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("invalid qos: error = %v, want ErrInvalidQoS", err)
	}

	oversized := make([]byte, maxPayloadSize+1)
	if err := c.Publish("geocontrol/system/status", oversized, 1, false); !errors.Is(err, ErrPublishFailed) {
		t.Errorf("oversized payload: error = %v, want ErrPublishFailed", err)
	}
}

func TestSubscribeValidation(t *testing.T) {
	c := &Client{subscriptions: make(map[string]subscription)}
	handler := func(_ string, _ []byte) error { return nil }

	if err := c.Subscribe("", 1, handler); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Subscribe("geocontrol/#", 3, handler); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("invalid qos: error = %v, want ErrInvalidQoS", err)
	}
	if err := c.Subscribe("geocontrol/#", 1, nil); !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("nil handler: error = %v, want ErrSubscribeFailed", err)
	}
	if err := c.Unsubscribe(""); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("unsubscribe empty topic: error = %v, want ErrInvalidTopic", err)
	}
}

func TestCloseNil(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on unconnected client: error = %v", err)
	}
}

func TestSubscriptionCountEmpty(t *testing.T) {
	c := &Client{subscriptions: make(map[string]subscription)}
	if got := c.SubscriptionCount(); got != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", got)
	}
	if c.HasSubscription("geocontrol/#") {
		t.Error("HasSubscription() = true for untracked topic")
	}
}
