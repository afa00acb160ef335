package main

import (
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"go.smartmachine.io/cognito-relay/pkg/config"
	"go.smartmachine.io/cognito-relay/pkg/relay"
	"go.smartmachine.io/cognito-relay/pkg/ssm"
	"go.uber.org/zap"
)

func main() {
	// Setup structured logging
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load(ssm.NewStore(logger))
	if err != nil {
		log.Fatalw("invalid relay configuration", "Error", err)
	}

	log.Infow("relay configured", "Timeout", cfg.Timeout.String())

	client := &http.Client{Timeout: cfg.Timeout}
	lambda.Start(relay.New(cfg.EndpointURL, client, logger).Forward)
}
