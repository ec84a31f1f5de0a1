package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/logicmonitor/advisor-config-sdk-go/model"
	"github.com/stretchr/testify/assert"
)

func TestConvertError(t *testing.T) {
	authFailed := &azidentity.AuthenticationFailedError{RawResponse: &http.Response{StatusCode: http.StatusUnauthorized}}
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	tests := []struct {
		name       string
		err        error
		kind       model.ErrorKind
		statusCode int
		errorCode  string
	}{
		{name: "identity rejection", err: fmt.Errorf("token: %w", authFailed), kind: model.AuthenticationError, statusCode: http.StatusUnauthorized},
		{name: "forbidden", err: &azcore.ResponseError{StatusCode: http.StatusForbidden, ErrorCode: "AuthorizationFailed"}, kind: model.AuthorizationError, statusCode: http.StatusForbidden, errorCode: "AuthorizationFailed"},
		{name: "unauthorized", err: &azcore.ResponseError{StatusCode: http.StatusUnauthorized, ErrorCode: "InvalidAuthenticationToken"}, kind: model.AuthorizationError, statusCode: http.StatusUnauthorized, errorCode: "InvalidAuthenticationToken"},
		{name: "subscription not found", err: &azcore.ResponseError{StatusCode: http.StatusNotFound, ErrorCode: "SubscriptionNotFound"}, kind: model.NotFoundError, statusCode: http.StatusNotFound, errorCode: "SubscriptionNotFound"},
		{name: "bad request", err: &azcore.ResponseError{StatusCode: http.StatusBadRequest, ErrorCode: "InvalidRequestContent"}, kind: model.ValidationError, statusCode: http.StatusBadRequest, errorCode: "InvalidRequestContent"},
		{name: "conflict", err: &azcore.ResponseError{StatusCode: http.StatusConflict}, kind: model.ValidationError, statusCode: http.StatusConflict},
		{name: "throttled", err: &azcore.ResponseError{StatusCode: http.StatusTooManyRequests}, kind: model.TransportError, statusCode: http.StatusTooManyRequests},
		{name: "server error", err: &azcore.ResponseError{StatusCode: http.StatusBadGateway}, kind: model.TransportError, statusCode: http.StatusBadGateway},
		{name: "dial failure", err: dialErr, kind: model.TransportError},
		{name: "deadline", err: context.DeadlineExceeded, kind: model.TransportError},
		{name: "cancelled", err: fmt.Errorf("send: %w", context.Canceled), kind: model.TransportError},
		{name: "anything else", err: errors.New("boom"), kind: model.UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converted := ConvertError(tt.err)
			var cfgErr *model.ConfigurationError
			if assert.ErrorAs(t, converted, &cfgErr) {
				assert.Equal(t, tt.kind, cfgErr.Kind)
				assert.Equal(t, tt.statusCode, cfgErr.StatusCode)
				assert.Equal(t, tt.errorCode, cfgErr.ErrorCode)
				assert.ErrorIs(t, converted, tt.err)
			}
		})
	}
}

func TestConvertErrorNil(t *testing.T) {
	assert.NoError(t, ConvertError(nil))
}

func TestConvertErrorAlreadyConverted(t *testing.T) {
	original := &model.ConfigurationError{Kind: model.NotFoundError, Err: errors.New("gone")}
	assert.Same(t, original, ConvertError(original))
}

func TestConvertAuthError(t *testing.T) {
	rejected := errors.New("invalid client secret")
	converted := ConvertAuthError(rejected)
	assert.True(t, model.IsKind(converted, model.AuthenticationError))
	assert.ErrorIs(t, converted, rejected)

	converted = ConvertAuthError(context.DeadlineExceeded)
	assert.True(t, model.IsKind(converted, model.TransportError))
}
