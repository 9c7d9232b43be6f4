package domain

const (
	RoleBuyer   = "BUYER"
	RoleCreator = "CREATOR"
	RoleAdmin   = "ADMIN"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusFailed    = "FAILED"
	OrderStatusCancelled = "CANCELLED"
)

const (
	TxKindCreditSale  = "CREDIT_SALE"
	TxKindDebitPayout = "DEBIT_PAYOUT"
	TxKindAdjustment  = "ADJUSTMENT"
	TxKindReversal    = "REVERSAL"
)

const (
	TxStatusAvailable = "AVAILABLE"
	TxStatusPending   = "PENDING"
	TxStatusCompleted = "COMPLETED"
	TxStatusFailed    = "FAILED"
)

const (
	PayoutStatusRequested  = "REQUESTED"
	PayoutStatusProcessing = "PROCESSING"
	PayoutStatusCompleted  = "COMPLETED"
	PayoutStatusFailed     = "FAILED"
	PayoutStatusRejected   = "REJECTED"
)

const (
	ProductTypeDigital  = "DIGITAL"
	ProductTypeSession  = "SESSION"
	ProductTypeTelegram = "TELEGRAM"
)

const (
	ProductStatusDraft    = "DRAFT"
	ProductStatusActive   = "ACTIVE"
	ProductStatusArchived = "ARCHIVED"
)

const (
	DeliveryMethodLink   = "LINK"
	DeliveryMethodFile   = "FILE"
	DeliveryMethodManual = "MANUAL"
)
