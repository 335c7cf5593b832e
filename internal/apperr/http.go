package apperr

import "net/http"

// HTTPStatus maps an error kind onto the status code the API answers with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput, KindInvalidOperation, KindUnpublished, KindInvalidOrExpiredToken:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindDeliveryFailed:
		return http.StatusBadGateway
	case KindRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}
