package ssm

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/fatih/structs"
	"go.smartmachine.io/cognito-relay/pkg/util"
	"go.uber.org/zap"
)

// Store reads relay settings from the SSM parameter store.
type Store struct {
	svc ssmiface.SSMAPI
	log *zap.SugaredLogger
}

func NewStore(logger *zap.Logger) *Store {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	return NewStoreWithClient(ssm.New(sess), logger)
}

func NewStoreWithClient(svc ssmiface.SSMAPI, logger *zap.Logger) *Store {
	return &Store{svc: svc, log: logger.Sugar()}
}

// GetParameter returns the decrypted value of the named parameter.
func (s *Store) GetParameter(name string) (string, error) {
	getParameterRequest := &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	}

	s.log.Infow("SSM GetParameter Request", "Request", structs.Map(getParameterRequest))

	getParameterResponse, err := s.svc.GetParameter(getParameterRequest)
	if err != nil {
		util.LogAWSError(s.log, "SSM GetParameter Error", err, "Name", name)
		return "", err
	}

	param := getParameterResponse.Parameter
	if param == nil || param.Value == nil || *param.Value == "" {
		s.log.Errorw("SSM parameter has no value", "Name", name)
		return "", fmt.Errorf("ssm parameter %s has no value", name)
	}

	// the value may be a SecureString, keep it out of the logs
	s.log.Infow("SSM GetParameter Response", "Name", aws.StringValue(param.Name), "Version", aws.Int64Value(param.Version))

	return *param.Value, nil
}
