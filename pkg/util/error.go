package util

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"go.uber.org/zap"
)

// EndpointError is returned when the endpoint answers with a status >= 400.
// Cognito surfaces Message to the client, so it carries the most readable
// text the endpoint gave us.
type EndpointError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Body    string `json:"-"`
}

func NewEndpointError(message string, status int, body string) error {
	if message == "" {
		message = strconv.Itoa(status)
	}
	return &EndpointError{Message: message, Status: status, Body: body}
}

func (ee *EndpointError) Error() string {
	return ee.Message
}

// TransportError wraps a failure to complete the HTTP round trip.
type TransportError struct {
	URL string
	Err error
}

func NewTransportError(url string, err error) error {
	return &TransportError{URL: url, Err: err}
}

func (te *TransportError) Error() string {
	return te.Err.Error()
}

func (te *TransportError) Unwrap() error {
	return te.Err
}

func LogAWSError(log *zap.SugaredLogger, msg string, err error, keysAndValues ...interface{}) {
	if aerr, ok := err.(awserr.Error); ok {
		keysAndValues = append(keysAndValues, "Code", aerr.Code(), "Message", aerr.Message())
	}
	log.Errorw(msg, append(keysAndValues, "Error", err)...)
}
