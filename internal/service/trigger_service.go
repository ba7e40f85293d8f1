package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/pkg/templates"
)

// TriggerService converts qualifying business events into notifications.
// Scan-based triggers (abandoned carts, restocks) run on an external
// cadence via RunOnce; event-based triggers (order status, welcome) are
// invoked by collaborator hooks.
type TriggerService struct {
	triggers  *repository.TriggerRepository
	carts     *repository.CartRepository
	restocks  *repository.RestockRepository
	audience  *repository.AudienceRepository
	notify    *NotificationService
	email     *EmailService
	batchSize int
}

func NewTriggerService(
	triggers *repository.TriggerRepository,
	carts *repository.CartRepository,
	restocks *repository.RestockRepository,
	audience *repository.AudienceRepository,
	notify *NotificationService,
	email *EmailService,
	batchSize int,
) *TriggerService {
	return &TriggerService{
		triggers:  triggers,
		carts:     carts,
		restocks:  restocks,
		audience:  audience,
		notify:    notify,
		email:     email,
		batchSize: batchSize,
	}
}

type TriggerRunResult struct {
	AbandonedCarts int `json:"abandoned_carts"`
	RestockAlerts  int `json:"restock_alerts"`
	EmailsSent     int `json:"emails_sent"`
}

// RunOnce scans for qualifying rows under each active trigger config.
// Per-row failures are isolated; completion flags are set regardless of
// email outcome so no row is ever reprocessed by a later run.
func (s *TriggerService) RunOnce(ctx context.Context) TriggerRunResult {
	var res TriggerRunResult

	if cfg, err := s.triggers.ActiveByType(domain.TriggerAbandonedCart); err != nil {
		log.Printf("[Trigger] abandoned_cart config: %v", err)
	} else if cfg != nil {
		s.runAbandonedCarts(ctx, cfg, &res)
	}

	if cfg, err := s.triggers.ActiveByType(domain.TriggerRestock); err != nil {
		log.Printf("[Trigger] restock config: %v", err)
	} else if cfg != nil {
		s.runRestocks(ctx, cfg, &res)
	}

	log.Printf("[Trigger] run complete: %d cart reminder(s), %d restock alert(s), %d email(s)",
		res.AbandonedCarts, res.RestockAlerts, res.EmailsSent)
	return res
}

func (s *TriggerService) runAbandonedCarts(ctx context.Context, cfg *models.NotificationTrigger, res *TriggerRunResult) {
	now := time.Now()
	carts, err := s.carts.FindDueReminders(now, cfg.DelayMinutes, s.batchSize)
	if err != nil {
		log.Printf("[Trigger] find due carts: %v", err)
		return
	}
	for i := range carts {
		cart := &carts[i]
		vars := map[string]string{
			"item_count":    strconv.Itoa(cart.ItemCount),
			"customer_name": cartCustomerName(cart),
		}
		title, message, err := renderPair(cfg, vars)
		if err != nil {
			log.Printf("[Trigger] abandoned_cart templates: %v", err)
			return
		}

		if cart.UserID != nil {
			if _, err := s.notify.NotifyUser(*cart.UserID, domain.NotifTypePromo, title, message, "/cart"); err != nil {
				log.Printf("[Trigger] in-app for cart %d: %v", cart.ID, err)
			}
		}
		if cfg.SendEmail {
			if addr := cartEmail(cart); addr != "" {
				if err := s.sendTriggerEmail(ctx, addr, title, message, "/cart"); err == nil {
					res.EmailsSent++
				}
			}
		}

		// The reminder is committed whether or not email went through;
		// at-most-once per window beats perfect delivery.
		if err := s.carts.MarkReminded(cart.ID, now); err != nil {
			log.Printf("[Trigger] mark cart %d reminded: %v", cart.ID, err)
			continue
		}
		res.AbandonedCarts++
	}
}

func (s *TriggerService) runRestocks(ctx context.Context, cfg *models.NotificationTrigger, res *TriggerRunResult) {
	alerts, err := s.restocks.FindPending(s.batchSize)
	if err != nil {
		log.Printf("[Trigger] find pending restocks: %v", err)
		return
	}
	for i := range alerts {
		alert := &alerts[i]
		vars := map[string]string{"product_name": alert.Product.Name}
		title, message, err := renderPair(cfg, vars)
		if err != nil {
			log.Printf("[Trigger] restock templates: %v", err)
			return
		}
		link := "/products/" + alert.Product.Slug

		if alert.UserID != nil {
			if _, err := s.notify.NotifyUser(*alert.UserID, domain.NotifTypeProduct, title, message, link); err != nil {
				log.Printf("[Trigger] in-app for alert %d: %v", alert.ID, err)
			}
		}
		if cfg.SendEmail {
			if addr := alertEmail(alert); addr != "" {
				if err := s.sendTriggerEmail(ctx, addr, title, message, link); err == nil {
					res.EmailsSent++
				}
			}
		}

		if err := s.restocks.MarkNotified(alert.ID); err != nil {
			log.Printf("[Trigger] mark alert %d notified: %v", alert.ID, err)
			continue
		}
		res.RestockAlerts++
	}
}

// HandleOrderStatus applies the active order_status trigger to a status
// change reported by the order collaborator. No active config means no
// notification.
func (s *TriggerService) HandleOrderStatus(ctx context.Context, orderID uint, status string) error {
	cfg, err := s.triggers.ActiveByType(domain.TriggerOrderStatus)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}
	order, err := s.audience.OrderWithUser(orderID)
	if err != nil {
		return fmt.Errorf("order %d: %w", orderID, err)
	}
	if status == "" {
		status = order.Status
	}
	vars := map[string]string{
		"order_number":  order.OrderNumber,
		"status":        status,
		"customer_name": order.User.Name,
	}
	title, message, err := renderPair(cfg, vars)
	if err != nil {
		return err
	}
	link := "/orders/" + order.OrderNumber
	if _, err := s.notify.NotifyUser(order.UserID, domain.NotifTypeOrder, title, message, link); err != nil {
		return err
	}
	if cfg.SendEmail && order.User.Email != "" {
		if err := s.sendTriggerEmail(ctx, order.User.Email, title, message, link); err != nil {
			log.Printf("[Trigger] order %d email: %v", orderID, err)
		}
	}
	return nil
}

// HandleWelcome fires on account creation when a welcome config is
// active. Failures are the caller's to log; registration never blocks
// on it.
func (s *TriggerService) HandleWelcome(ctx context.Context, user *models.User) error {
	cfg, err := s.triggers.ActiveByType(domain.TriggerWelcome)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}
	vars := map[string]string{"customer_name": user.Name}
	title, message, err := renderPair(cfg, vars)
	if err != nil {
		return err
	}
	if _, err := s.notify.NotifyUser(user.ID, domain.NotifTypeInfo, title, message, ""); err != nil {
		return err
	}
	if cfg.SendEmail && user.Email != "" {
		if err := s.sendTriggerEmail(ctx, user.Email, title, message, ""); err != nil {
			log.Printf("[Trigger] welcome email for %d: %v", user.ID, err)
		}
	}
	return nil
}

func (s *TriggerService) sendTriggerEmail(ctx context.Context, to, title, message, link string) error {
	if !s.email.Enabled() {
		log.Printf("[Trigger] email to %s skipped: channel disabled", to)
		return ErrEmailDisabled
	}
	if err := s.email.Send(ctx, to, title, BuildNotificationHTML(title, message, link, "")); err != nil {
		log.Printf("[Trigger] email to %s failed: %v", to, err)
		return err
	}
	return nil
}

func renderPair(cfg *models.NotificationTrigger, vars map[string]string) (title, message string, err error) {
	title, err = templates.Render(cfg.TitleTemplate, vars)
	if err != nil {
		return "", "", fmt.Errorf("title template: %w", err)
	}
	message, err = templates.Render(cfg.MessageTemplate, vars)
	if err != nil {
		return "", "", fmt.Errorf("message template: %w", err)
	}
	return title, message, nil
}

func cartCustomerName(cart *models.AbandonedCart) string {
	if cart.User != nil && cart.User.Name != "" {
		return cart.User.Name
	}
	return "there"
}

func cartEmail(cart *models.AbandonedCart) string {
	if cart.Email != "" {
		return cart.Email
	}
	if cart.User != nil {
		return cart.User.Email
	}
	return ""
}

func alertEmail(alert *models.RestockAlert) string {
	if alert.Email != "" {
		return alert.Email
	}
	if alert.User != nil {
		return alert.User.Email
	}
	return ""
}
