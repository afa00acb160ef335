package relay

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	uuid "github.com/satori/go.uuid"
)

// Event is a Cognito trigger event. Its shape belongs to the trigger source,
// so it is kept as a plain map and forwarded untouched.
type Event map[string]interface{}

// Header extracts the fields shared by all user pool triggers. Missing or
// mistyped fields are left zero.
func (e Event) Header() events.CognitoEventUserPoolsHeader {
	var header events.CognitoEventUserPoolsHeader

	data, err := json.Marshal(e)
	if err != nil {
		return header
	}
	_ = json.Unmarshal(data, &header)

	return header
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewV4().String()
}
