package model

// =====================================================
// PAYMENT PROVIDERS
// =====================================================
const (
	ProviderCashfree = "cashfree"
	ProviderPayU     = "payu"
	ProviderPhonePe  = "phonepe"
	ProviderRazorpay = "razorpay"
	ProviderStripe   = "stripe"
)

var ValidProviders = []string{
	ProviderCashfree,
	ProviderPayU,
	ProviderPhonePe,
	ProviderRazorpay,
	ProviderStripe,
}

// =====================================================
// CANONICAL PAYMENT STATUS
// =====================================================

// Status is the canonical payment lifecycle every provider's native
// vocabulary is normalized into.
type Status string

const (
	StatusCreated  Status = "created"
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
	StatusCaptured Status = "captured"
)

var ValidStatuses = []Status{
	StatusCreated,
	StatusPending,
	StatusPaid,
	StatusFailed,
	StatusRefunded,
	StatusCaptured,
}

// =====================================================
// ENVIRONMENTS
// =====================================================
const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

var ValidEnvironments = []string{EnvSandbox, EnvProduction}

// =====================================================
// INTERNAL ERROR CODES
// =====================================================
const (
	// Checkout path
	ErrCodeOrderNotFound   = "PAY001"
	ErrCodeInvalidProvider = "PAY002"
	ErrCodeConfiguration   = "PAY003"
	ErrCodeTransport       = "PAY004"
	ErrCodeInvalidAmount   = "PAY005"

	// Webhook path
	ErrCodeUnknownProvider = "PAY006"
	ErrCodeDuplicateEvent  = "PAY007"

	// System
	ErrCodeUnauthorized  = "PAY008"
	ErrCodeInternalError = "PAY009"
)

// =====================================================
// AUDIT ACTIONS
// =====================================================
const (
	AuditActionCreateOrder = "payment.create_order"
	AuditActionWebhook     = "payment.webhook"
	AuditActionCapture     = "payment.capture"
	AuditActionRefund      = "payment.refund"
	AuditActionFetchStatus = "payment.fetch_status"
)
