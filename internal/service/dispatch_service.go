package service

import (
	"context"
	"log"
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"

	"github.com/google/uuid"
)

// DispatchService is the cadence-invoked scheduler: each run finds
// notifications whose scheduled time has elapsed and fans them out. It
// holds no resident state; overlapping runs are deduplicated only by the
// optimistic is_sent flag.
type DispatchService struct {
	repo      *repository.NotificationRepository
	notify    *NotificationService
	batchSize int
}

func NewDispatchService(repo *repository.NotificationRepository, notify *NotificationService, batchSize int) *DispatchService {
	return &DispatchService{repo: repo, notify: notify, batchSize: batchSize}
}

type DispatchResult struct {
	Count      int    `json:"count"`
	EmailsSent int    `json:"emailsSent"`
	IDs        []uint `json:"ids"`
}

// RunOnce processes one bounded batch of due notifications. A failure on
// one notification is logged and the run moves on; once a record is
// marked sent it is committed even if delivery partially failed.
func (s *DispatchService) RunOnce(ctx context.Context) DispatchResult {
	runID := uuid.NewString()[:8]
	result := DispatchResult{IDs: []uint{}}

	due, err := s.repo.FindDue(time.Now(), s.batchSize)
	if err != nil {
		log.Printf("[Dispatch %s] find due: %v", runID, err)
		return result
	}
	for i := range due {
		n := &due[i]
		emails, err := s.notify.Deliver(ctx, n)
		result.EmailsSent += emails
		if err != nil {
			log.Printf("[Dispatch %s] notification %d: %v", runID, n.ID, err)
			continue
		}
		result.Count++
		result.IDs = append(result.IDs, n.ID)
	}
	log.Printf("[Dispatch %s] dispatched %d notification(s), %d email(s)", runID, result.Count, result.EmailsSent)
	return result
}
