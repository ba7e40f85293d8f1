package domain

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// Notification types shown in the storefront notification center.
const (
	NotifTypeInfo    = "info"
	NotifTypeProduct = "product"
	NotifTypeOrder   = "order"
	NotifTypePromo   = "promo"
)

// Targeting segments resolvable at dispatch time.
const (
	SegmentAll                   = "all"
	SegmentNewsletterSubscribers = "newsletter_subscribers"
	SegmentNewCustomers          = "new_customers"
	SegmentHighValue             = "high_value"
	SegmentByLocation            = "by_location"
)

const (
	TriggerAbandonedCart = "abandoned_cart"
	TriggerOrderStatus   = "order_status"
	TriggerRestock       = "restock"
	TriggerWelcome       = "welcome"
)

const (
	VariantA = "A"
	VariantB = "B"
)

// Default high_value threshold when target_criteria omits min_order_value.
const DefaultMinOrderValue = 5000

// New-customer lookback window in days (inclusive boundary).
const NewCustomerWindowDays = 30

// Abandoned-cart reminder policy.
const (
	MaxCartReminders        = 3
	FirstReminderMinGapMin  = 60
	RepeatReminderMinGapMin = 24 * 60
)

// TemplateVars lists the placeholders each trigger type may use.
// The renderer rejects templates referencing anything else.
var TemplateVars = map[string][]string{
	TriggerAbandonedCart: {"item_count", "customer_name"},
	TriggerOrderStatus:   {"order_number", "status", "customer_name"},
	TriggerRestock:       {"product_name"},
	TriggerWelcome:       {"customer_name"},
}

func ValidNotifType(t string) bool {
	switch t {
	case NotifTypeInfo, NotifTypeProduct, NotifTypeOrder, NotifTypePromo:
		return true
	}
	return false
}

func ValidSegment(s string) bool {
	switch s {
	case SegmentAll, SegmentNewsletterSubscribers, SegmentNewCustomers, SegmentHighValue, SegmentByLocation:
		return true
	}
	return false
}

func ValidTriggerType(t string) bool {
	switch t {
	case TriggerAbandonedCart, TriggerOrderStatus, TriggerRestock, TriggerWelcome:
		return true
	}
	return false
}
