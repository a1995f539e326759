package constants

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
	OrderStatusDisputed  = "disputed"
)

// Payment status constants
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusDisputed  = "disputed"
)

// Payment provider constants
const (
	PaymentProviderStripe = "stripe"
)

// Stock movement type constants
const (
	StockMovementSale       = "sale"
	StockMovementRestock    = "restock"
	StockMovementAdjustment = "adjustment"
	StockMovementRelease    = "release"
)

// Stock movement actor constants
const (
	StockActorCheckout = "checkout"
	StockActorAdmin    = "admin"
	StockActorSystem   = "system"
)

// Shipping method constants
const (
	ShippingMethodStandard = "standard"
	ShippingMethodExpress  = "express"
)

// Shipment constants
const (
	ShipmentCarrierAusPost  = "auspost"
	ShipmentStatusPending   = "pending"
	ShipmentStatusInTransit = "in_transit"
	ShipmentStatusDelivered = "delivered"
)

// Promotion type constants
const (
	PromotionTypeFixed        = "fixed"
	PromotionTypePercent      = "percent"
	PromotionTypeSpecialPrice = "special_price"
)

// Review status constants
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User role constants
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// Notification channel constants
const (
	NotificationChannelEmail = "email"
	NotificationChannelSMS   = "sms"
)

// Queue constants
const (
	QueueDefault           = "default"
	TaskOrderConfirmation  = "order:confirmation"
	TaskOrderStatusNotify  = "order:status_notify"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
	TaskShipmentNotify     = "shipment:notify"
)

// Site currency constants
const (
	SiteCurrencyDefault = "AUD"
)
