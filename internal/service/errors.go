package service

import (
	"errors"

	"techmarket/internal/repository"
)

var (
	ErrNotFound           = errors.New("no product found with that id")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrStoreUnavailable   = errors.New("could not connect to the database")
)

// ValidationError is a client-side check that failed before any query ran.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// User-facing messages.
const (
	MsgLoginFieldsRequired  = "Please fill in the username and the password."
	MsgAccessDenied         = "Incorrect username or password."
	MsgStoreUnavailable     = "Could not connect to the database."
	MsgListFailed           = "An error occurred while fetching the products."
	MsgCreateFieldsRequired = "Fill in all fields to add a product."
	MsgInvalidPrice         = "Invalid price."
	MsgUpdateFieldsRequired = "Fill in at least one field to update."
	MsgInvalidUpdateID      = "Invalid product ID for update."
	MsgInvalidDeleteID      = "Enter a valid product ID to delete."
	MsgNotFound             = "No product found with that ID."
	MsgTableNotFound        = "Table 'products' not found. Create the table or check the table name."
	MsgPermissionDenied     = "Permission denied. Check the table access policies or the credentials used by the client."
	MsgProductCreated       = "Product added!"
	MsgProductUpdated       = "Product updated!"
	MsgProductDeleted       = "Product deleted!"
	MsgOperationInProgress  = "Another operation is still in progress."
)

// UserMessage maps an operation error to the message shown to the user.
func UserMessage(err error) string {
	var v *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &v):
		return v.Message
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return MsgAccessDenied
	case errors.Is(err, ErrStoreUnavailable):
		return MsgStoreUnavailable
	case errors.Is(err, repository.ErrTableNotFound):
		return MsgTableNotFound
	case errors.Is(err, repository.ErrPermissionDenied):
		return MsgPermissionDenied
	default:
		return err.Error()
	}
}
