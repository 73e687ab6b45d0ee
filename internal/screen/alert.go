package screen

import (
	"errors"
	"fmt"

	"techmarket/internal/repository"
	"techmarket/internal/service"
)

// Level is the severity of an Alert
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Alert is a modal message shown to the user. The zero Alert shows nothing.
type Alert struct {
	Level   Level
	Title   string
	Message string
}

// Empty reports whether there is nothing to show
func (a Alert) Empty() bool { return a.Message == "" }

// String renders the alert as "[Title] Message"
func (a Alert) String() string {
	return fmt.Sprintf("[%s] %s", a.Title, a.Message)
}

// Messages shown by the screens themselves
const (
	MsgAdminAreaClosed = "Open the admin area first."
	MsgLoadingProducts = "Loading products..."
)

func success(message string) Alert {
	return Alert{Level: LevelSuccess, Title: "Success", Message: message}
}

func busy() Alert {
	return Alert{Level: LevelWarning, Title: "Please wait", Message: service.MsgOperationInProgress}
}

// alertFor turns an operation error into the alert the screen shows.
// Validation failures use validationTitle.
func alertFor(err error, validationTitle string) Alert {
	message := service.UserMessage(err)

	switch {
	case service.IsValidation(err):
		return Alert{Level: LevelWarning, Title: validationTitle, Message: message}
	case errors.Is(err, service.ErrNotFound):
		return Alert{Level: LevelInfo, Title: "Notice", Message: message}
	case errors.Is(err, service.ErrInvalidCredentials):
		return Alert{Level: LevelError, Title: "Access Error", Message: message}
	case errors.Is(err, service.ErrStoreUnavailable):
		return Alert{Level: LevelError, Title: "Error", Message: message}
	case errors.Is(err, repository.ErrPermissionDenied):
		return Alert{Level: LevelError, Title: "Permission denied", Message: message}
	default:
		return Alert{Level: LevelError, Title: "Error", Message: message}
	}
}
