package transaction

import "errors"

var (
	ErrAccountRequired      = errors.New("transaction account is required")
	ErrInvalidKind          = errors.New("transaction kind must be income, expense or transfer")
	ErrNonPositiveAmount    = errors.New("transaction amount must be greater than zero")
	ErrTransferWithCategory = errors.New("transfer transactions cannot have a category")
	ErrCategoryKindMismatch = errors.New("category kind does not match transaction kind")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrUnauthorizedAccess   = errors.New("transaction does not belong to user")
)
