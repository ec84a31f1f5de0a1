package client

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/logicmonitor/advisor-config-sdk-go/model"
	"github.com/logicmonitor/advisor-config-sdk-go/utils"
)

// ConvertError classifies an error returned by azidentity or the Advisor client.
// The original error is kept as the cause.
func ConvertError(err error) error {
	if err == nil {
		return nil
	}
	var cfgErr *model.ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}
	cfgErr = &model.ConfigurationError{Kind: model.UnknownError, Err: err}

	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		cfgErr.Kind = model.AuthenticationError
		if authErr.RawResponse != nil {
			cfgErr.StatusCode = authErr.RawResponse.StatusCode
		}
		return cfgErr
	}

	if respErr, ok := utils.ResponseError(err); ok {
		cfgErr.StatusCode = respErr.StatusCode
		cfgErr.ErrorCode = respErr.ErrorCode
		cfgErr.Kind = kindForStatus(respErr.StatusCode)
		return cfgErr
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		cfgErr.Kind = model.TransportError
	}
	return cfgErr
}

// ConvertAuthError classifies an error returned while obtaining a token. Anything
// that is not a transport failure is an authentication failure.
func ConvertAuthError(err error) error {
	converted := ConvertError(err)
	var cfgErr *model.ConfigurationError
	if errors.As(converted, &cfgErr) && cfgErr.Kind == model.UnknownError {
		cfgErr.Kind = model.AuthenticationError
	}
	return converted
}

func kindForStatus(statusCode int) model.ErrorKind {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return model.AuthorizationError
	case statusCode == http.StatusNotFound:
		return model.NotFoundError
	case statusCode == http.StatusTooManyRequests || statusCode == http.StatusRequestTimeout || statusCode >= 500:
		return model.TransportError
	case statusCode >= 400:
		return model.ValidationError
	default:
		return model.UnknownError
	}
}
