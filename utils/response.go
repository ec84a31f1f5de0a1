package utils

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/google/uuid"
)

const (
	HeaderRequestID       = "x-ms-request-id"
	HeaderClientRequestID = "x-ms-client-request-id"
)

// ResponseError extracts the ARM error carried by err, if any.
func ResponseError(err error) (*azcore.ResponseError, bool) {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}

// RequestID returns the service-assigned request id of resp, or uuid.Nil when the
// response is missing or the header is not a UUID.
func RequestID(resp *http.Response) uuid.UUID {
	if resp == nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(resp.Header.Get(HeaderRequestID))
	if err != nil {
		return uuid.Nil
	}
	return id
}
