// Package clickhouse contains the analytics store: an async batch writer for
// per-set records and the aggregate read queries behind the stats endpoints.
package clickhouse

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/domain"
)

// SetBatchWriterConfig contains configuration for the batch writer
type SetBatchWriterConfig struct {
	BatchSize     int
	FlushInterval time.Duration
}

// SetBatchWriter buffers set records and flushes them to ClickHouse in
// batches, either when the buffer fills or on the flush interval. It owns its
// buffer exclusively; callers only ever append through Write.
type SetBatchWriter struct {
	conn   driver.Conn
	config SetBatchWriterConfig
	logger *zap.Logger

	mu     sync.Mutex
	buffer []domain.SetRecord

	stopCh chan struct{}
	wg     sync.WaitGroup

	written    int64
	flushCount int64
	errorCount int64
	metricsMu  sync.RWMutex
}

// NewSetBatchWriter creates a new batch writer
func NewSetBatchWriter(conn driver.Conn, config SetBatchWriterConfig, logger *zap.Logger) *SetBatchWriter {
	if config.BatchSize <= 0 {
		config.BatchSize = 500
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	return &SetBatchWriter{
		conn:   conn,
		config: config,
		logger: logger,
		buffer: make([]domain.SetRecord, 0, config.BatchSize),
		stopCh: make(chan struct{}),
	}
}

// Start begins the background flush goroutine
func (w *SetBatchWriter) Start() {
	w.wg.Add(1)
	go w.flushLoop()
	w.logger.Info("set batch writer started",
		zap.Int("batch_size", w.config.BatchSize),
		zap.Duration("flush_interval", w.config.FlushInterval),
	)
}

// Stop gracefully stops the writer, draining any buffered records
func (w *SetBatchWriter) Stop(ctx context.Context) error {
	close(w.stopCh)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if err := w.Flush(ctx); err != nil {
			w.logger.Error("failed to flush remaining records on shutdown", zap.Error(err))
			return err
		}
		w.logger.Info("set batch writer stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *SetBatchWriter) flushLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := w.Flush(ctx); err != nil {
				w.logger.Error("periodic flush failed", zap.Error(err))
			}
			cancel()
		case <-w.stopCh:
			return
		}
	}
}

// Write adds records to the buffer, flushing when the batch size is reached
func (w *SetBatchWriter) Write(ctx context.Context, records []domain.SetRecord) error {
	w.mu.Lock()
	w.buffer = append(w.buffer, records...)
	shouldFlush := len(w.buffer) >= w.config.BatchSize
	w.mu.Unlock()

	if shouldFlush {
		return w.Flush(ctx)
	}
	return nil
}

// Flush writes all buffered records to ClickHouse
func (w *SetBatchWriter) Flush(ctx context.Context) error {
	w.mu.Lock()
	if len(w.buffer) == 0 {
		w.mu.Unlock()
		return nil
	}
	records := w.buffer
	w.buffer = make([]domain.SetRecord, 0, w.config.BatchSize)
	w.mu.Unlock()

	batch, err := w.conn.PrepareBatch(ctx, `
		INSERT INTO workout_sets (
			owner_id, workout_id, exercise_id, exercise_name,
			reps, weight_kg, volume_kg, performed_at
		)
	`)
	if err != nil {
		w.incrementErrors()
		return err
	}

	for _, rec := range records {
		if err := batch.Append(
			rec.OwnerID,
			rec.WorkoutID,
			rec.ExerciseID,
			rec.ExerciseName,
			rec.Reps,
			rec.WeightKg,
			rec.VolumeKg,
			rec.PerformedAt,
		); err != nil {
			w.incrementErrors()
			return err
		}
	}

	if err := batch.Send(); err != nil {
		w.incrementErrors()
		return err
	}

	w.metricsMu.Lock()
	w.written += int64(len(records))
	w.flushCount++
	w.metricsMu.Unlock()

	w.logger.Debug("flushed set records", zap.Int("count", len(records)))
	return nil
}

func (w *SetBatchWriter) incrementErrors() {
	w.metricsMu.Lock()
	w.errorCount++
	w.metricsMu.Unlock()
}

// Metrics reports the writer's lifetime counters
func (w *SetBatchWriter) Metrics() (written, flushes, errors int64) {
	w.metricsMu.RLock()
	defer w.metricsMu.RUnlock()
	return w.written, w.flushCount, w.errorCount
}
