package service

import (
	"context"
	"testing"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/ws"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newTriggerService(t *testing.T) (*TriggerService, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	notifRepo := repository.NewNotificationRepository(db)
	resolver := NewSegmentResolver(repository.NewAudienceRepository(db))
	notify := NewNotificationService(notifRepo, repository.NewUserRepository(db), resolver, disabledEmail(), ws.NewHub())
	svc := NewTriggerService(
		repository.NewTriggerRepository(db),
		repository.NewCartRepository(db),
		repository.NewRestockRepository(db),
		repository.NewAudienceRepository(db),
		notify,
		disabledEmail(),
		50,
	)
	return svc, mock
}

func triggerConfigRows(triggerType, title, message string, sendEmail bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "trigger_type", "is_active", "delay_minutes",
		"title_template", "message_template", "send_email", "send_push",
	}).AddRow(1, triggerType, true, 60, title, message, sendEmail, false)
}

func TestRunOnceWithNoActiveConfigs(t *testing.T) {
	svc, mock := newTriggerService(t)

	// Both scan triggers are consulted; neither has an active config.
	mock.ExpectQuery("SELECT (.+) FROM `notification_triggers`").
		WithArgs(domain.TriggerAbandonedCart, true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT (.+) FROM `notification_triggers`").
		WithArgs(domain.TriggerRestock, true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	res := svc.RunOnce(context.Background())
	if res.AbandonedCarts != 0 || res.RestockAlerts != 0 || res.EmailsSent != 0 {
		t.Errorf("result = %+v, want all zero", res)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAbandonedCartReminder(t *testing.T) {
	svc, mock := newTriggerService(t)
	cfg := &models.NotificationTrigger{
		TriggerType:     domain.TriggerAbandonedCart,
		DelayMinutes:    60,
		TitleTemplate:   "You left {{item_count}} item(s)",
		MessageTemplate: "Come back, {{customer_name}}!",
		SendEmail:       true,
	}

	mock.ExpectQuery("SELECT (.+) FROM `abandoned_carts`").
		WithArgs(false, domain.MaxCartReminders, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "email", "item_count", "recovered", "reminder_count",
		}).AddRow(3, 7, "", 2, false, 0))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(7, "Amina", "amina@example.com"))

	// In-app record for the cart owner.
	mock.ExpectExec("INSERT INTO `notifications`").
		WillReturnResult(sqlmock.NewResult(21, 1))
	// Completion flags stamped even though email is disabled.
	mock.ExpectExec("UPDATE `abandoned_carts`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	var res TriggerRunResult
	svc.runAbandonedCarts(context.Background(), cfg, &res)

	if res.AbandonedCarts != 1 {
		t.Errorf("AbandonedCarts = %d, want 1", res.AbandonedCarts)
	}
	if res.EmailsSent != 0 {
		t.Errorf("EmailsSent = %d, want 0 with channel disabled", res.EmailsSent)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAbandonedCartBadTemplateAbortsRun(t *testing.T) {
	svc, mock := newTriggerService(t)
	cfg := &models.NotificationTrigger{
		TriggerType:     domain.TriggerAbandonedCart,
		TitleTemplate:   "Hi {{first_name}}", // not an allowed cart variable
		MessageTemplate: "m",
	}

	mock.ExpectQuery("SELECT (.+) FROM `abandoned_carts`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "email", "item_count", "recovered", "reminder_count",
		}).AddRow(3, nil, "guest@example.com", 1, false, 0))

	var res TriggerRunResult
	svc.runAbandonedCarts(context.Background(), cfg, &res)

	// No write happened: the row stays eligible for the next run.
	if res.AbandonedCarts != 0 {
		t.Errorf("AbandonedCarts = %d, want 0", res.AbandonedCarts)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestockAlerts(t *testing.T) {
	svc, mock := newTriggerService(t)
	cfg := &models.NotificationTrigger{
		TriggerType:     domain.TriggerRestock,
		TitleTemplate:   "{{product_name}} is back",
		MessageTemplate: "Grab it before it sells out",
	}

	mock.ExpectQuery("SELECT (.+) FROM `restock_alerts`").
		WithArgs(false, 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "product_id", "user_id", "email", "notified",
		}).AddRow(4, 9, nil, "guest@example.com", false))
	mock.ExpectQuery("SELECT (.+) FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "stock"}).
			AddRow(9, "Table Lamp", "table-lamp", 12))

	// Guest alert: no in-app record, but the flag still flips.
	mock.ExpectExec("UPDATE `restock_alerts`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	var res TriggerRunResult
	svc.runRestocks(context.Background(), cfg, &res)

	if res.RestockAlerts != 1 {
		t.Errorf("RestockAlerts = %d, want 1", res.RestockAlerts)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleOrderStatus(t *testing.T) {
	svc, mock := newTriggerService(t)

	mock.ExpectQuery("SELECT (.+) FROM `notification_triggers`").
		WithArgs(domain.TriggerOrderStatus, true, 1).
		WillReturnRows(triggerConfigRows(domain.TriggerOrderStatus,
			"Order {{order_number}} update", "Now {{status}}, {{customer_name}}", false))
	mock.ExpectQuery("SELECT (.+) FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "order_number", "status", "total_cents"}).
			AddRow(2, 7, "BL-1040", "processing", 4200))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(7, "Amina", "amina@example.com"))
	mock.ExpectExec("INSERT INTO `notifications`").
		WillReturnResult(sqlmock.NewResult(30, 1))

	err := svc.HandleOrderStatus(context.Background(), 2, "shipped")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleOrderStatusInactiveTriggerIsNoop(t *testing.T) {
	svc, mock := newTriggerService(t)

	mock.ExpectQuery("SELECT (.+) FROM `notification_triggers`").
		WithArgs(domain.TriggerOrderStatus, true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	require.NoError(t, svc.HandleOrderStatus(context.Background(), 2, "shipped"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleWelcome(t *testing.T) {
	svc, mock := newTriggerService(t)

	mock.ExpectQuery("SELECT (.+) FROM `notification_triggers`").
		WithArgs(domain.TriggerWelcome, true, 1).
		WillReturnRows(triggerConfigRows(domain.TriggerWelcome,
			"Welcome, {{customer_name}}!", "Thanks for joining", false))
	mock.ExpectExec("INSERT INTO `notifications`").
		WillReturnResult(sqlmock.NewResult(31, 1))

	user := &models.User{ID: 12, Name: "Brian", Email: "brian@example.com"}
	require.NoError(t, svc.HandleWelcome(context.Background(), user))
	require.NoError(t, mock.ExpectationsWereMet())
}
