package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/ws"
)

// NotificationService owns notification record creation and the delivery
// channel set: in-app insert plus realtime fan-out always, email when
// requested. Push is entirely client-side and has no server component.
type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	resolver *SegmentResolver
	email    *EmailService
	hub      *ws.Hub
}

func NewNotificationService(
	repo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	resolver *SegmentResolver,
	email *EmailService,
	hub *ws.Hub,
) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, resolver: resolver, email: email, hub: hub}
}

type CreateNotificationInput struct {
	Title          string     `json:"title" binding:"required"`
	Message        string     `json:"message" binding:"required"`
	Type           string     `json:"type" binding:"required"`
	Link           string     `json:"link"`
	ImageURL       string     `json:"image_url"`
	UserID         *uint      `json:"user_id"`
	TargetSegment  string     `json:"target_segment"`
	TargetCriteria string     `json:"target_criteria"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
	SendEmail      bool       `json:"send_email"`
}

// Create stores a notification record. A nil schedule means immediate
// dispatch; otherwise the record waits for the scheduler run after its
// time elapses.
func (s *NotificationService) Create(ctx context.Context, in CreateNotificationInput) (*models.Notification, error) {
	n := &models.Notification{
		Title:          in.Title,
		Message:        in.Message,
		Type:           in.Type,
		Link:           in.Link,
		ImageURL:       in.ImageURL,
		UserID:         in.UserID,
		IsGlobal:       in.UserID == nil,
		TargetSegment:  in.TargetSegment,
		TargetCriteria: in.TargetCriteria,
		ScheduledAt:    in.ScheduledAt,
		SendEmail:      in.SendEmail,
	}
	if n.IsGlobal && n.TargetSegment == "" {
		n.TargetSegment = "all"
	}
	if err := s.repo.Create(n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	if in.ScheduledAt == nil {
		if _, err := s.Deliver(ctx, n); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Deliver marks the record sent, fans it out to connected clients, and
// runs the optional per-recipient email batch. Per-recipient email
// failures are logged and counted, never escalated; delivered_count ends
// up as the number of successful sends.
func (s *NotificationService) Deliver(ctx context.Context, n *models.Notification) (int, error) {
	if !n.IsSent {
		if err := s.repo.MarkSent(n.ID); err != nil {
			return 0, fmt.Errorf("mark sent: %w", err)
		}
		n.IsSent = true
	}

	if n.IsGlobal {
		s.hub.BroadcastAll(FeedPayload(n))
	} else if n.UserID != nil {
		s.hub.BroadcastToUser(*n.UserID, FeedPayload(n))
	}

	emailsSent := 0
	if n.SendEmail {
		var err error
		emailsSent, err = s.deliverEmail(ctx, n)
		if err != nil {
			return emailsSent, err
		}
	}
	if err := s.repo.SetDeliveredCount(n.ID, emailsSent); err != nil {
		log.Printf("[Notify] delivered_count update for %d: %v", n.ID, err)
	}
	return emailsSent, nil
}

func (s *NotificationService) deliverEmail(ctx context.Context, n *models.Notification) (int, error) {
	if !s.email.Enabled() {
		log.Printf("[Notify] email skipped for notification %d: channel disabled", n.ID)
		return 0, nil
	}
	recipients, err := s.recipientsFor(n)
	if err != nil {
		return 0, fmt.Errorf("resolve recipients for notification %d: %w", n.ID, err)
	}
	html := BuildNotificationHTML(n.Title, n.Message, n.Link, n.ImageURL)
	sent := 0
	for _, rc := range recipients {
		if rc.Email == "" {
			continue
		}
		if err := s.email.Send(ctx, rc.Email, n.Title, html); err != nil {
			log.Printf("[Notify] email to %s failed: %v", rc.Email, err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *NotificationService) recipientsFor(n *models.Notification) ([]repository.RecipientContact, error) {
	if !n.IsGlobal {
		if n.UserID == nil {
			return nil, nil
		}
		u, err := s.userRepo.GetByID(*n.UserID)
		if err != nil {
			return nil, err
		}
		id := u.ID
		return []repository.RecipientContact{{Email: u.Email, Name: u.Name, UserID: &id}}, nil
	}
	return s.resolver.Resolve(n.TargetSegment, ParseCriteria(n.TargetCriteria))
}

// NotifyUser inserts a single-recipient in-app record and fans it out.
// Used by the trigger engine and collaborator event hooks.
func (s *NotificationService) NotifyUser(userID uint, notifType, title, message, link string) (*models.Notification, error) {
	n := &models.Notification{
		Title:   title,
		Message: message,
		Type:    notifType,
		Link:    link,
		UserID:  &userID,
		IsSent:  true,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, err
	}
	s.hub.BroadcastToUser(userID, FeedPayload(n))
	return n, nil
}

// RecordOpened and RecordClicked feed the engagement counters consumed
// by the A/B manager and the admin surface.
func (s *NotificationService) RecordOpened(id uint) error  { return s.repo.IncrementOpened(id) }
func (s *NotificationService) RecordClicked(id uint) error { return s.repo.IncrementClicked(id) }

// FeedPayload is the realtime envelope pushed over the websocket feed.
func FeedPayload(n *models.Notification) map[string]interface{} {
	return map[string]interface{}{
		"type": "notification",
		"data": n,
	}
}
