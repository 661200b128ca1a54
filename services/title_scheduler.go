package services

import (
	"context"

	"github.com/google/uuid"

	"innova-chat/logger"
	"innova-chat/taskqueue"
)

// QueueTitleScheduler runs title summarization on the background task
// queue. It satisfies both TitleScheduler and TaskCanceller; session
// deletion cancels whatever it scheduled.
type QueueTitleScheduler struct {
	queue  *taskqueue.Queue
	titles *TitleService
}

func NewQueueTitleScheduler(queue *taskqueue.Queue, titles *TitleService) *QueueTitleScheduler {
	return &QueueTitleScheduler{queue: queue, titles: titles}
}

func (s *QueueTitleScheduler) Schedule(sessionID int64) {
	taskID := uuid.New().String()
	ok := s.queue.Enqueue(taskqueue.Task{
		ID:        taskID,
		SessionID: sessionID,
		Run: func(ctx context.Context) {
			s.titles.Summarize(ctx, sessionID)
		},
	})
	if !ok {
		// Best-effort work: when the queue is saturated the title simply
		// stays as it was.
		logger.WarnWithFields("title task dropped, queue full", logger.Fields{
			"task_id":    taskID,
			"session_id": sessionID,
		})
		return
	}
	logger.InfoWithFields("title task scheduled", logger.Fields{
		"task_id":    taskID,
		"session_id": sessionID,
	})
}

func (s *QueueTitleScheduler) CancelSession(sessionID int64) {
	s.queue.CancelSession(sessionID)
}
