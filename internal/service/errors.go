package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto
// response codes and localized messages.
var (
	ErrFieldsRequired     = errors.New("required fields missing")
	ErrStatusInvalid      = errors.New("shipment status invalid")
	ErrCoordinatesInvalid = errors.New("coordinates invalid")
	ErrShipmentNotFound   = errors.New("shipment not found")
	ErrScanConflict       = errors.New("shipment already handled by another courier")
	ErrScanDebounced      = errors.New("scan suppressed inside debounce window")
	ErrTimeout            = errors.New("operation timed out")

	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingAlreadyResolved = errors.New("booking already resolved")
	ErrRejectReasonRequired   = errors.New("reject reason required")
	ErrManifestInsertFailed   = errors.New("branch manifest insert failed")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha configuration invalid")

	ErrUploadFileMissing = errors.New("upload file missing")
	ErrUploadInvalid     = errors.New("upload invalid")
)
