package services

import (
	"errors"
	"fmt"

	"github.com/campus-eats/canteen-app/models"
	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindPersistence   ErrorKind = "persistence"
	KindAuthorization ErrorKind = "authorization"
)

// Error is the structured failure returned by every service. Two errors
// match under errors.Is when their codes are equal.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	ItemID  uint
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrEmptyCart            = &Error{Kind: KindValidation, Code: "empty_cart", Message: "cart must contain at least one item"}
	ErrInvalidQuantity      = &Error{Kind: KindValidation, Code: "invalid_quantity", Message: "quantity must be a positive integer"}
	ErrInvalidPaymentMethod = &Error{Kind: KindValidation, Code: "invalid_payment_method", Message: "payment method must be cash or online"}
	ErrInvalidStatus        = &Error{Kind: KindValidation, Code: "invalid_status", Message: "unknown order status"}
	ErrInvalidInput         = &Error{Kind: KindValidation, Code: "invalid_input", Message: "invalid input"}

	ErrCanteenNotFound  = &Error{Kind: KindNotFound, Code: "canteen_not_found", Message: "canteen not found"}
	ErrMenuItemNotFound = &Error{Kind: KindNotFound, Code: "menu_item_not_found", Message: "menu item not found"}
	ErrCategoryNotFound = &Error{Kind: KindNotFound, Code: "category_not_found", Message: "category not found"}
	ErrOrderNotFound    = &Error{Kind: KindNotFound, Code: "order_not_found", Message: "order not found"}
	ErrUserNotFound     = &Error{Kind: KindNotFound, Code: "user_not_found", Message: "user not found"}

	ErrItemUnavailable   = &Error{Kind: KindConflict, Code: "item_unavailable", Message: "menu item is not available"}
	ErrInvalidTransition = &Error{Kind: KindConflict, Code: "invalid_transition", Message: "invalid status transition"}
	ErrEmailTaken        = &Error{Kind: KindConflict, Code: "email_taken", Message: "user already exists"}
	ErrItemInUse         = &Error{Kind: KindConflict, Code: "item_in_use", Message: "menu item has order history; mark it unavailable instead"}
	ErrDuplicateName     = &Error{Kind: KindConflict, Code: "duplicate_name", Message: "name already used"}

	ErrForbidden          = &Error{Kind: KindAuthorization, Code: "forbidden", Message: "you do not have permission"}
	ErrInvalidCredentials = &Error{Kind: KindAuthorization, Code: "invalid_credentials", Message: "invalid credentials"}

	ErrPersistence = &Error{Kind: KindPersistence, Code: "persistence_failure", Message: "persistence failure"}
)

func ItemUnavailable(itemID uint) error {
	return &Error{
		Kind:    KindConflict,
		Code:    ErrItemUnavailable.Code,
		Message: fmt.Sprintf("menu item %d is not available", itemID),
		ItemID:  itemID,
	}
}

func MenuItemNotFound(itemID uint) error {
	return &Error{
		Kind:    KindNotFound,
		Code:    ErrMenuItemNotFound.Code,
		Message: fmt.Sprintf("menu item %d not found", itemID),
		ItemID:  itemID,
	}
}

func InvalidQuantity(itemID uint, quantity int) error {
	return &Error{
		Kind:    KindValidation,
		Code:    ErrInvalidQuantity.Code,
		Message: fmt.Sprintf("quantity %d for menu item %d must be a positive integer", quantity, itemID),
		ItemID:  itemID,
	}
}

func InvalidTransition(from, to models.OrderStatus) error {
	return &Error{
		Kind:    KindConflict,
		Code:    ErrInvalidTransition.Code,
		Message: fmt.Sprintf("cannot move order from %s to %s", from, to),
	}
}

func invalidInput(msg string) error {
	return &Error{Kind: KindValidation, Code: ErrInvalidInput.Code, Message: msg}
}

// persistence wraps a storage error, passing service errors through untouched.
func persistence(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	return &Error{Kind: KindPersistence, Code: ErrPersistence.Code, Message: ErrPersistence.Message, Err: err}
}

// notFoundOr maps gorm.ErrRecordNotFound to notFound and anything else to a persistence failure.
func notFoundOr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return persistence(err)
}

// KindOf reports the kind of a service error, or persistence for foreign errors.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindPersistence
}
