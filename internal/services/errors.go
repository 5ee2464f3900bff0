package services

import "errors"

// Not-found errors surface as 404s; the remaining sentinels are
// user-correctable business rejections and map to 400.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrFineNotFound         = errors.New("fine not found")
	ErrDrinkNotFound        = errors.New("drink not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrLineupNotFound       = errors.New("lineup not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSettingsNotFound     = errors.New("club settings missing")
	ErrEntryNotFound        = errors.New("ledger entry not found")
	ErrOrderNotFound        = errors.New("drink order not found")
	ErrAssignmentNotFound   = errors.New("fine assignment not found")

	ErrInsufficientStock = errors.New("not enough stock")
	ErrInvalidAmount     = errors.New("amount_cents must be greater than zero")
	ErrInvalidEntryType  = errors.New("entry_type must be credit or debit")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidOrderMode  = errors.New("mode must be qr, kiosk or app")
)

// IsNotFound reports whether err is one of the entity-existence failures.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrFineNotFound),
		errors.Is(err, ErrDrinkNotFound),
		errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrLineupNotFound),
		errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrSubscriptionNotFound),
		errors.Is(err, ErrSettingsNotFound),
		errors.Is(err, ErrEntryNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrAssignmentNotFound):
		return true
	}
	return false
}

// IsValidation reports whether err is a client-correctable rejection.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidEntryType),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidOrderMode):
		return true
	}
	return false
}
