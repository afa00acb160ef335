// Package relay forwards Cognito trigger events to an HTTP endpoint and
// hands the endpoint's answer back to Cognito.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"mime"
	"net/http"
	"strings"

	"go.smartmachine.io/cognito-relay/pkg/util"
	"go.uber.org/zap"
)

const responseKey = "response"

// Relay posts events to a single endpoint.
type Relay struct {
	endpoint string
	client   *http.Client
	log      *zap.SugaredLogger
}

// New creates a Relay. A nil client means http.DefaultClient.
func New(endpoint string, client *http.Client, logger *zap.Logger) *Relay {
	if client == nil {
		client = http.DefaultClient
	}
	return &Relay{
		endpoint: endpoint,
		client:   client,
		log:      logger.Sugar(),
	}
}

// Forward sends event to the endpoint. On success the endpoint's JSON answer,
// if any, is attached to event under "response" and event is returned. A
// status >= 400 yields *util.EndpointError, a failed round trip
// *util.TransportError; in both cases event is left untouched.
func (r *Relay) Forward(ctx context.Context, event Event) (Event, error) {
	header := event.Header()

	body, err := json.Marshal(event)
	if err != nil {
		r.log.Errorw("error marshalling event", "Error", err)
		return nil, fmt.Errorf("unable to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID(ctx))

	r.log.Infow("Endpoint Request",
		"Method", req.Method,
		"URL", r.endpoint,
		"Headers", req.Header,
		"Body", string(body),
		"TriggerSource", header.TriggerSource,
		"UserPoolId", header.UserPoolID,
	)

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Errorw("Endpoint Request Error", "URL", r.endpoint, "Error", err)
		return nil, util.NewTransportError(r.endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		r.log.Errorw("error reading body", "URL", r.endpoint, "Error", err)
		return nil, util.NewTransportError(r.endpoint, err)
	}

	r.log.Infow("Endpoint Response",
		"Status", resp.StatusCode,
		"Headers", resp.Header,
		"Body", string(respBody),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, endpointError(resp.StatusCode, respBody)
	}

	if !isJSON(resp.Header.Get("Content-Type")) || len(bytes.TrimSpace(respBody)) == 0 {
		return event, nil
	}

	var parsed interface{}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		r.log.Errorw("error unmarshalling json", "Error", err)
		return nil, fmt.Errorf("unable to parse endpoint response: %w", err)
	}

	if response := triggerResponse(parsed); response != nil {
		event[responseKey] = response
	}

	return event, nil
}

// endpointError prefers a JSON "message" field, then the raw body, then the
// status code.
func endpointError(status int, body []byte) error {
	message := string(body)
	if strings.TrimSpace(message) == "" {
		message = ""
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		if m, ok := payload["message"].(string); ok && m != "" {
			message = m
		}
	}

	return util.NewEndpointError(message, status, string(body))
}

// triggerResponse unwraps {"response": ...} when the endpoint echoes an
// augmented event back instead of the bare response.
func triggerResponse(parsed interface{}) interface{} {
	if obj, ok := parsed.(map[string]interface{}); ok {
		if inner, ok := obj[responseKey]; ok {
			return inner
		}
	}
	return parsed
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
