//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/shooting-analytics/internal/adapter/csvsource"
	"github.com/couchcryptid/shooting-analytics/internal/adapter/kafka"
	"github.com/couchcryptid/shooting-analytics/internal/config"
	"github.com/couchcryptid/shooting-analytics/internal/domain"
	"github.com/couchcryptid/shooting-analytics/internal/mockdata"
	"github.com/couchcryptid/shooting-analytics/internal/observability"
	"github.com/couchcryptid/shooting-analytics/internal/pipeline"
)

const testReportTopic = "test-trend-reports"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("shooting-analytics-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// readStep reads one report message and returns its payload and headers.
func readStep(ctx context.Context, t *testing.T, r *kafkago.Reader) (kafka.StepMessage, string, map[string]string) {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := r.ReadMessage(readCtx)
	require.NoError(t, err, "read from report topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var step kafka.StepMessage
	require.NoError(t, json.Unmarshal(msg.Value, &step))
	return step, string(msg.Key), headers
}

// TestPipelinePublishesRunReport runs the trends pipeline on generated data
// and reads every step report back from Kafka in execution order.
func TestPipelinePublishesRunReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testReportTopic)

	cfg := &config.Config{
		KafkaBrokers:     []string{broker},
		KafkaReportTopic: testReportTopic,
	}
	writer := kafka.NewReportWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	var buf bytes.Buffer
	opts := mockdata.Options{Rows: 200, Seed: 5, StartYear: 2019, Years: 3}
	require.NoError(t, mockdata.Generate(&buf, opts))
	frame, err := csvsource.Read(&buf)
	require.NoError(t, err)

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(pipeline.Settings{
		OutputDir:     t.TempDir(),
		ExcludeYear:   2021,
		Alpha:         0.05,
		HistogramBins: 20,
	}, nil, io.Discard, discardLogger(), metrics).WithPublisher(writer)

	// Only steps that write no images, so no chart writer is needed.
	steps, err := pipeline.SelectSteps(pipeline.StepDeriveDateTime, pipeline.StepExcludeYear, pipeline.StepRaceSexAssoc)
	require.NoError(t, err)
	p.WithSteps(steps...)

	report, _, err := p.Run(ctx, "generated", frame)
	require.NoError(t, err)
	require.Len(t, report.Steps, 3)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testReportTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	for _, want := range report.Steps {
		got, key, headers := readStep(ctx, t, consumer)
		assert.Equal(t, report.ID, key)
		assert.Equal(t, report.ID, got.RunID)
		assert.Equal(t, "generated", got.Input)
		assert.Equal(t, opts.Rows, got.Rows)
		assert.Equal(t, want.Name, got.Step.Name)
		assert.Equal(t, domain.StepOK, got.Step.Status)
		assert.Equal(t, want.Name, headers["step"])
		assert.Equal(t, string(domain.StepOK), headers["status"])
	}
}
