package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
)

// User error codes (USER_*)
const (
	UserNotFound      ErrorCode = "USER_001"
	UserAlreadyExists ErrorCode = "USER_002"
	UserInvalidID     ErrorCode = "USER_003"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound      ErrorCode = "ACCOUNT_001"
	AccountNumberExists  ErrorCode = "ACCOUNT_002"
	AccountInvalidNumber ErrorCode = "ACCOUNT_003"
	AccountNoInstrument  ErrorCode = "ACCOUNT_004"
)

// Card error codes (CARD_*)
const (
	CardNotFound ErrorCode = "CARD_001"
	CardBlocked  ErrorCode = "CARD_002"
)

// Deposit error codes (DEPOSIT_*)
const (
	DepositNotFound ErrorCode = "DEPOSIT_001"
)

// Catalog error codes (CATALOG_*)
const (
	TransactionTypeNotFound ErrorCode = "CATALOG_001"
	CashbackNotFound        ErrorCode = "CATALOG_002"
	CardTypeNotFound        ErrorCode = "CATALOG_003"
	CardDesignNotFound      ErrorCode = "CATALOG_004"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferSameAccount       ErrorCode = "TRANSFER_001"
	TransferInsufficientFunds ErrorCode = "TRANSFER_002"
	TransferCurrencyMismatch  ErrorCode = "TRANSFER_003"
	TransferInvalidAmount     ErrorCode = "TRANSFER_004"
	TransferNotFound          ErrorCode = "TRANSFER_005"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemRouteNotFound      ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",

	UserNotFound:      "User not found",
	UserAlreadyExists: "A user with this email already exists",
	UserInvalidID:     "Invalid user ID",

	AccountNotFound:      "Bank account not found",
	AccountNumberExists:  "Account number already exists",
	AccountInvalidNumber: "Account number must be exactly 20 digits",
	AccountNoInstrument:  "Bank account has no linked card or deposit",

	CardNotFound: "Card not found",
	CardBlocked:  "Card is blocked",

	DepositNotFound: "Deposit not found",

	TransactionTypeNotFound: "Transaction type not found",
	CashbackNotFound:        "Cashback rule not found",
	CardTypeNotFound:        "Card type not found",
	CardDesignNotFound:      "Card design not found",

	TransferSameAccount:       "Cannot transfer to the same account",
	TransferInsufficientFunds: "Source instrument has insufficient balance for this transfer",
	TransferCurrencyMismatch:  "Instrument currency does not match the transaction currency",
	TransferInvalidAmount:     "Invalid transfer amount",
	TransferNotFound:          "Transaction not found",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Requested resource not found",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
