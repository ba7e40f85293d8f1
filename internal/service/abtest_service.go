package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/ws"
)

// Minimum combined opens before a winner recommendation is surfaced.
const abTestMinOpens = 10

// ABTestService runs controlled A/B experiments on message content: two
// variants under one test name, sent to disjoint random halves of the
// audience, with independent engagement counters per variant.
type ABTestService struct {
	repo     *repository.NotificationRepository
	resolver *SegmentResolver
	email    *EmailService
	hub      *ws.Hub
}

func NewABTestService(repo *repository.NotificationRepository, resolver *SegmentResolver, email *EmailService, hub *ws.Hub) *ABTestService {
	return &ABTestService{repo: repo, resolver: resolver, email: email, hub: hub}
}

type VariantContent struct {
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Link     string `json:"link"`
	ImageURL string `json:"image_url"`
}

type CreateABTestInput struct {
	TestName       string         `json:"test_name" binding:"required"`
	Type           string         `json:"type" binding:"required"`
	VariantA       VariantContent `json:"variant_a" binding:"required"`
	VariantB       VariantContent `json:"variant_b" binding:"required"`
	TargetSegment  string         `json:"target_segment"`
	TargetCriteria string         `json:"target_criteria"`
	SendEmail      bool           `json:"send_email"`
}

// Create inserts variant A as the test parent and variant B as its
// child, marks both sent, and distributes them to random disjoint
// audience halves.
func (s *ABTestService) Create(ctx context.Context, in CreateABTestInput) (*models.Notification, *models.Notification, error) {
	segment := in.TargetSegment
	if segment == "" {
		segment = domain.SegmentAll
	}
	parent := s.buildVariant(in, in.VariantA, domain.VariantA, segment, nil)
	if err := s.repo.Create(parent); err != nil {
		return nil, nil, fmt.Errorf("create variant A: %w", err)
	}
	child := s.buildVariant(in, in.VariantB, domain.VariantB, segment, &parent.ID)
	if err := s.repo.Create(child); err != nil {
		return parent, nil, fmt.Errorf("create variant B: %w", err)
	}

	s.hub.BroadcastAll(FeedPayload(parent))
	s.hub.BroadcastAll(FeedPayload(child))

	if in.SendEmail {
		s.distribute(ctx, parent, child)
	}
	return parent, child, nil
}

func (s *ABTestService) buildVariant(in CreateABTestInput, content VariantContent, variantID, segment string, parentID *uint) *models.Notification {
	return &models.Notification{
		Title:          content.Title,
		Message:        content.Message,
		Type:           in.Type,
		Link:           content.Link,
		ImageURL:       content.ImageURL,
		IsGlobal:       true,
		IsSent:         true,
		SendEmail:      in.SendEmail,
		TargetSegment:  segment,
		TargetCriteria: in.TargetCriteria,
		IsABTest:       true,
		ABTestName:     in.TestName,
		VariantID:      variantID,
		ParentID:       parentID,
	}
}

// distribute shuffles the resolved audience and emails each half its
// variant. Per-recipient failures are logged and counted out of the
// variant's delivered total.
func (s *ABTestService) distribute(ctx context.Context, parent, child *models.Notification) {
	if !s.email.Enabled() {
		log.Printf("[ABTest] %s email skipped: channel disabled", parent.ABTestName)
		return
	}
	recipients, err := s.resolver.Resolve(parent.TargetSegment, ParseCriteria(parent.TargetCriteria))
	if err != nil {
		log.Printf("[ABTest] %s resolve: %v", parent.ABTestName, err)
		return
	}
	rand.Shuffle(len(recipients), func(i, j int) {
		recipients[i], recipients[j] = recipients[j], recipients[i]
	})
	half := len(recipients) / 2
	sentA := s.sendVariant(ctx, parent, recipients[:half])
	sentB := s.sendVariant(ctx, child, recipients[half:])
	if err := s.repo.SetDeliveredCount(parent.ID, sentA); err != nil {
		log.Printf("[ABTest] delivered_count A: %v", err)
	}
	if err := s.repo.SetDeliveredCount(child.ID, sentB); err != nil {
		log.Printf("[ABTest] delivered_count B: %v", err)
	}
}

func (s *ABTestService) sendVariant(ctx context.Context, n *models.Notification, recipients []repository.RecipientContact) int {
	html := BuildNotificationHTML(n.Title, n.Message, n.Link, n.ImageURL)
	sent := 0
	for _, rc := range recipients {
		if rc.Email == "" {
			continue
		}
		if err := s.email.Send(ctx, rc.Email, n.Title, html); err != nil {
			log.Printf("[ABTest] email to %s failed: %v", rc.Email, err)
			continue
		}
		sent++
	}
	return sent
}

type VariantMetrics struct {
	ID        uint    `json:"id"`
	Variant   string  `json:"variant"`
	Title     string  `json:"title"`
	Delivered int     `json:"delivered"`
	Opened    int     `json:"opened"`
	Clicked   int     `json:"clicked"`
	CTR       float64 `json:"ctr"`
}

type ABTestMetrics struct {
	TestName  string           `json:"test_name"`
	Variants  []VariantMetrics `json:"variants"`
	Confident bool             `json:"confident"`
	Winner    string           `json:"winner,omitempty"` // "A" or "B"; empty when undecided
}

// Metrics aggregates per-variant engagement and applies the winner rule:
// strictly higher CTR wins, ties declare nothing, and no winner is
// surfaced until combined opens pass the confidence gate.
func (s *ABTestService) Metrics(testName string) (*ABTestMetrics, error) {
	variants, err := s.repo.VariantsByTestName(testName)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("a/b test %q not found", testName)
	}
	m := &ABTestMetrics{TestName: testName}
	totalOpens := 0
	for i := range variants {
		v := &variants[i]
		m.Variants = append(m.Variants, VariantMetrics{
			ID:        v.ID,
			Variant:   v.VariantID,
			Title:     v.Title,
			Delivered: v.DeliveredCount,
			Opened:    v.OpenedCount,
			Clicked:   v.ClickedCount,
			CTR:       v.CTR(),
		})
		totalOpens += v.OpenedCount
	}
	m.Confident = totalOpens > abTestMinOpens
	if m.Confident && len(m.Variants) == 2 {
		a, b := m.Variants[0], m.Variants[1]
		switch {
		case a.CTR > b.CTR:
			m.Winner = a.Variant
		case b.CTR > a.CTR:
			m.Winner = b.Variant
		}
	}
	return m, nil
}

func (s *ABTestService) List() ([]models.Notification, error) {
	return s.repo.ListABTests()
}

// Delete removes a test by its parent record ID, cascading to the B
// child. Deleting a child directly is rejected upstream.
func (s *ABTestService) Delete(parentID uint) error {
	return s.repo.DeleteWithVariants(parentID)
}
