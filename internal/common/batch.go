package common

import (
	"context"
	"runtime"
	"sync"

	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/models"
)

// SequentialThreshold is the batch size below which messages are processed
// on the calling goroutine.
const SequentialThreshold = 100

// ProcessFunc turns one message into one result row.
type ProcessFunc func(ctx context.Context, msg models.MessageRow) models.ResultRow

// BatchProcessor fans messages out to a pool of workers. Output order always
// matches input order.
type BatchProcessor struct {
	logger      logging.Logger
	workerCount int
}

// NewBatchProcessor creates a processor. workers <= 0 means one per CPU.
func NewBatchProcessor(workers int, logger logging.Logger) *BatchProcessor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchProcessor{
		logger:      logging.OrDefault(logger),
		workerCount: workers,
	}
}

// Workers returns the pool size.
func (bp *BatchProcessor) Workers() int {
	return bp.workerCount
}

// Process runs fn over every message. Messages not started before ctx is
// cancelled get a row carrying the context error.
func (bp *BatchProcessor) Process(ctx context.Context, messages []models.MessageRow, fn ProcessFunc) []models.ResultRow {
	if len(messages) < SequentialThreshold || bp.workerCount == 1 {
		return bp.processSequential(ctx, messages, fn)
	}
	return bp.processConcurrent(ctx, messages, fn)
}

func (bp *BatchProcessor) processSequential(ctx context.Context, messages []models.MessageRow, fn ProcessFunc) []models.ResultRow {
	results := make([]models.ResultRow, len(messages))
	for i, msg := range messages {
		if err := ctx.Err(); err != nil {
			results[i] = cancelledRow(msg, err)
			continue
		}
		results[i] = fn(ctx, msg)
	}
	return results
}

func (bp *BatchProcessor) processConcurrent(ctx context.Context, messages []models.MessageRow, fn ProcessFunc) []models.ResultRow {
	results := make([]models.ResultRow, len(messages))
	done := make([]bool, len(messages))
	jobs := make(chan int, bp.workerCount)

	var wg sync.WaitGroup
	for w := 0; w < bp.workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(ctx, messages[i])
				done[i] = true
			}
		}()
	}

feed:
	for i := range messages {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i := range messages {
		if !done[i] {
			results[i] = cancelledRow(messages[i], ctx.Err())
		}
	}

	bp.logger.Debug("Concurrent processing completed",
		logging.Field{Key: logging.FieldCount, Value: len(messages)},
		logging.Field{Key: logging.FieldWorkers, Value: bp.workerCount})
	return results
}

func cancelledRow(msg models.MessageRow, err error) models.ResultRow {
	row := models.ResultRow{ID: msg.ID, Text: msg.Text}
	if err != nil {
		row.Error = err.Error()
	}
	return row
}
