package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/khoahotran/notion-blog/internal/application/service"
	"github.com/khoahotran/notion-blog/internal/config"
	"github.com/khoahotran/notion-blog/internal/domain/searchlog"
	"github.com/khoahotran/notion-blog/pkg/logger"
	"github.com/khoahotran/notion-blog/pkg/metrics"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewKafkaProducerClient_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaProducerClient(config.Config{}, logger.NewNopLogger(), nil)
	assert.Error(t, err)
}

func TestNewKafkaProducerClient_WiresCompletion(t *testing.T) {
	cfg := config.Config{}
	cfg.Kafka.Brokers = []string{"localhost:9092"}

	client, err := NewKafkaProducerClient(cfg, logger.NewNopLogger(), nil)
	require.NoError(t, err)
	defer client.Close()

	w, ok := client.SearchEventsWriter.(*kafka.Writer)
	require.True(t, ok)
	assert.True(t, w.Async)
	assert.NotNil(t, w.Completion)
}

func TestOnCompletion_ReportsDeliveryFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := metrics.New(prometheus.NewRegistry())
	client := &KafkaProducerClient{logger: logger.NewFromZap(zap.New(core)), metrics: m}

	msgs := []kafka.Message{{Key: []byte("a")}, {Key: []byte("b")}}
	client.onCompletion(msgs, nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EventsPublishFailed))

	client.onCompletion(msgs, errors.New("leader not available"))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsPublishFailed))
	assert.Equal(t, 2, logs.FilterMessage("Search event delivery failed").Len())
}

func TestPublishSearchEvent(t *testing.T) {
	w := &recordingWriter{}
	client := &KafkaProducerClient{SearchEventsWriter: w, logger: logger.NewNopLogger()}

	evt := service.SearchEvent{
		ID:         uuid.New(),
		Query:      "kafka",
		Strategy:   "legacy",
		Outcome:    searchlog.OutcomeOK,
		Total:      2,
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, client.PublishSearchEvent(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, evt.ID.String(), string(w.msgs[0].Key))

	var decoded service.SearchEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, evt.Query, decoded.Query)
	assert.Equal(t, evt.Outcome, decoded.Outcome)

	client.Close()
	assert.True(t, w.closed)
}

func TestPublishSearchEvent_WriteError(t *testing.T) {
	client := &KafkaProducerClient{SearchEventsWriter: &recordingWriter{err: errors.New("no leader")}, logger: logger.NewNopLogger()}

	err := client.PublishSearchEvent(context.Background(), service.SearchEvent{ID: uuid.New()})
	assert.ErrorContains(t, err, "no leader")
}
