package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/geocontrol/geocontrol-core/internal/infrastructure/config"
	"github.com/geocontrol/geocontrol-core/internal/infrastructure/logging"
	"github.com/geocontrol/geocontrol-core/internal/infrastructure/mqtt"
	"github.com/geocontrol/geocontrol-core/internal/measurement"
)

// recordTimeout bounds how long a single batch may take to persist.
// The MQTT handler runs in its own goroutine, so a stuck database write
// must not hold message processing hostage indefinitely.
const recordTimeout = 10 * time.Second

// Subscriber is the broker surface the service needs.
// Satisfied by *mqtt.Client; mocked in tests.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
}

// Recorder persists decoded reading batches.
// Satisfied by *measurement.Service.
type Recorder interface {
	Record(ctx context.Context, networkCode, gatewayMac, sensorMac string, readings []measurement.Measurement) error
}

// wireReading is one reading in a published batch. The timestamp is a
// string so malformed values are reported per item, and Value is a
// pointer so a missing value is distinguishable from zero.
type wireReading struct {
	CreatedAt string   `json:"createdAt"`
	Value     *float64 `json:"value"`
}

// Service subscribes to the measurement wildcard topic and records every
// valid batch that arrives.
type Service struct {
	cfg      config.IngestConfig
	broker   Subscriber
	recorder Recorder
	topics   mqtt.Topics
	logger   *logging.Logger
}

// NewService creates an ingestion service. It does not subscribe until
// Start is called.
func NewService(cfg config.IngestConfig, broker Subscriber, recorder Recorder, logger *logging.Logger) *Service {
	return &Service{
		cfg:      cfg,
		broker:   broker,
		recorder: recorder,
		topics:   mqtt.Topics{Root: cfg.TopicRoot},
		logger:   logger,
	}
}

// Start subscribes to the measurement wildcard topic.
func (s *Service) Start() error {
	qos := byte(s.cfg.QoS)
	if err := s.broker.Subscribe(s.topics.AllMeasurements(), qos, s.handleMessage); err != nil {
		return fmt.Errorf("subscribing to measurements: %w", err)
	}

	s.logger.Info("measurement ingestion started",
		"topic", s.topics.AllMeasurements(), "qos", qos)
	return nil
}

// Stop unsubscribes from the measurement topic. Messages already handed
// to the handler may still complete.
func (s *Service) Stop() error {
	if err := s.broker.Unsubscribe(s.topics.AllMeasurements()); err != nil {
		return fmt.Errorf("unsubscribing from measurements: %w", err)
	}
	return nil
}

// handleMessage decodes and stores one published batch.
//
// Returned errors are logged by the MQTT client wrapper; the message is
// not redelivered. A gateway publishing garbage loses that batch.
func (s *Service) handleMessage(topic string, payload []byte) error {
	networkCode, gatewayMac, sensorMac, err := s.topics.ParseMeasurementTopic(topic)
	if err != nil {
		return err
	}

	readings, err := decodeBatch(payload)
	if err != nil {
		return fmt.Errorf("batch on %s: %w", topic, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := s.recorder.Record(ctx, networkCode, gatewayMac, sensorMac, readings); err != nil {
		return fmt.Errorf("recording batch for sensor %s: %w", sensorMac, err)
	}

	s.logger.Debug("measurement batch ingested",
		"network", networkCode, "sensor", sensorMac, "count", len(readings))
	return nil
}

// decodeBatch parses a published JSON array into measurements.
func decodeBatch(payload []byte) ([]measurement.Measurement, error) {
	var items []wireReading
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}
	if len(items) == 0 {
		return nil, measurement.ErrEmptyBatch
	}

	readings := make([]measurement.Measurement, 0, len(items))
	for i, item := range items {
		if item.Value == nil {
			return nil, fmt.Errorf("reading %d: value is required", i)
		}
		createdAt, err := measurement.ParseTimestamp(item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("reading %d: %w", i, err)
		}
		readings = append(readings, measurement.Measurement{
			CreatedAt: createdAt,
			Value:     *item.Value,
		})
	}
	return readings, nil
}
