package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrUsernameInvalid    = errors.New("username invalid")
	ErrRoleInvalid        = errors.New("role invalid")
	ErrSuperAdminRoles    = errors.New("super admin roles are immutable")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already registered")
	ErrProfileInvalid     = errors.New("profile invalid")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")

	ErrProductNotAvailable = errors.New("product not available")
	ErrProductSlugExists   = errors.New("product slug already exists")
	ErrProductInvalid      = errors.New("product invalid")
	ErrProductPriceInvalid = errors.New("product price invalid")

	ErrCartEmpty           = errors.New("cart is empty")
	ErrCheckoutUnavailable = errors.New("checkout unavailable")
	ErrCheckoutSessionID   = errors.New("checkout session id invalid")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrOrderRecordFailed   = errors.New("order record failed")
)
