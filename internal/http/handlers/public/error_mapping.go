package public

import (
	"errors"

	handlershared "github.com/trendsight-boutique/internal/http/handlers/shared"
	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartAddErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrNotFound, code: response.CodeBadRequest, key: "error.product_not_available"},
}

var checkoutCreateErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCheckoutUnavailable, code: response.CodeInternal, key: "error.checkout_unavailable"},
}

var checkoutConfirmErrorRules = []mappedHandlerError{
	{target: service.ErrCheckoutSessionID, code: response.CodeBadRequest, key: "error.checkout_session_invalid"},
	{target: service.ErrCheckoutUnavailable, code: response.CodeInternal, key: "error.checkout_unavailable"},
	{target: service.ErrPaymentNotCompleted, code: response.CodeBadRequest, key: "error.payment_not_completed"},
	{target: service.ErrOrderRecordFailed, code: response.CodeInternal, key: "error.order_record_failed"},
}

var userRegisterErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrProfileInvalid, code: response.CodeBadRequest, key: "error.profile_invalid"},
}

var userLoginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.user_login_invalid"},
}

var userProfileErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var userPasswordErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.password_old_invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var favoriteAddErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
}

func respondCartAddError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartAddErrorRules, response.CodeInternal, "error.internal")
}

func respondCheckoutCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutCreateErrorRules, response.CodeInternal, "error.checkout_failed")
}

func respondCheckoutConfirmError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutConfirmErrorRules, response.CodeInternal, "error.checkout_failed")
}

func respondUserRegisterError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userRegisterErrorRules, response.CodeInternal, "error.register_failed")
}

func respondUserLoginError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userLoginErrorRules, response.CodeInternal, "error.login_failed")
}

func respondUserProfileError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userProfileErrorRules, response.CodeInternal, "error.internal")
}

func respondUserPasswordError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userPasswordErrorRules, response.CodeInternal, "error.password_update_failed")
}

func respondFavoriteAddError(c *gin.Context, err error) {
	respondWithMappedError(c, err, favoriteAddErrorRules, response.CodeInternal, "error.favorite_save_failed")
}
