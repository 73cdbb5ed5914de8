// Package kafka publishes pipeline run reports to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/shooting-analytics/internal/config"
	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

// StepMessage is the payload of one published step report.
type StepMessage struct {
	RunID      string            `json:"run_id"`
	Input      string            `json:"input"`
	Rows       int               `json:"rows"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Step       domain.StepReport `json:"step"`
}

// ReportWriter produces step reports to the report topic.
// It implements pipeline.ReportPublisher.
type ReportWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewReportWriter creates a Kafka producer for the configured report topic.
func NewReportWriter(cfg *config.Config, logger *slog.Logger) *ReportWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &ReportWriter{writer: w, logger: logger}
}

// Publish writes one message per step of the run in a single WriteMessages
// call. All messages share the run ID as key so they land on one partition in order.
func (w *ReportWriter) Publish(ctx context.Context, run domain.RunReport) error {
	msgs, err := messagesFor(run)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish run %s: %w", run.ID, err)
	}
	w.logger.Debug("run report published", "run_id", run.ID, "messages", len(msgs))
	return nil
}

// Close flushes pending writes and closes the producer.
func (w *ReportWriter) Close() error {
	return w.writer.Close()
}

func messagesFor(run domain.RunReport) ([]kafkago.Message, error) {
	msgs := make([]kafkago.Message, 0, len(run.Steps))
	for _, step := range run.Steps {
		msg, err := serializeToMessage(run, step)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func serializeToMessage(run domain.RunReport, step domain.StepReport) (kafkago.Message, error) {
	data, err := json.Marshal(StepMessage{
		RunID:      run.ID,
		Input:      run.Input,
		Rows:       run.Rows,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Step:       step,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize step report %s: %w", step.Name, err)
	}
	return kafkago.Message{
		Key:   []byte(run.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "step", Value: []byte(step.Name)},
			{Key: "status", Value: []byte(step.Status)},
			{Key: "finished_at", Value: []byte(run.FinishedAt.Format(time.RFC3339))},
		},
	}, nil
}
