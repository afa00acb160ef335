package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParams struct {
	values map[string]string
	calls  []string
}

func (s *stubParams) GetParameter(name string) (string, error) {
	s.calls = append(s.calls, name)
	value, ok := s.values[name]
	if !ok {
		return "", errors.New("parameter not found")
	}
	return value, nil
}

func setEnv(t *testing.T, url, param, timeout string) {
	t.Setenv("ENDPOINT_URL", url)
	t.Setenv("ENDPOINT_URL_PARAMETER", param)
	t.Setenv("ENDPOINT_TIMEOUT", timeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	setEnv(t, "https://hooks.example.com/cognito", "", "5s")
	params := &stubParams{}

	cfg, err := Load(params)
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/cognito", cfg.EndpointURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Empty(t, params.calls)
}

func TestLoadDefaultsTimeoutToZero(t *testing.T) {
	setEnv(t, "https://hooks.example.com/cognito", "", "")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Zero(t, cfg.Timeout)
}

func TestLoadResolvesParameter(t *testing.T) {
	setEnv(t, "", "/relay/endpoint", "")
	params := &stubParams{values: map[string]string{"/relay/endpoint": "https://hooks.example.com/from-ssm"}}

	cfg, err := Load(params)
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/from-ssm", cfg.EndpointURL)
	assert.Equal(t, []string{"/relay/endpoint"}, params.calls)
}

func TestLoadPrefersExplicitURL(t *testing.T) {
	setEnv(t, "https://hooks.example.com/direct", "/relay/endpoint", "")
	params := &stubParams{values: map[string]string{"/relay/endpoint": "https://hooks.example.com/from-ssm"}}

	cfg, err := Load(params)
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/direct", cfg.EndpointURL)
	assert.Empty(t, params.calls)
}

func TestLoadParameterFailure(t *testing.T) {
	setEnv(t, "", "/relay/missing", "")

	_, err := Load(&stubParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/relay/missing")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		timeout string
		wantErr string
	}{
		{name: "missing url", url: "", wantErr: "ENDPOINT_URL is required"},
		{name: "relative url", url: "/cognito", wantErr: "must use http or https"},
		{name: "ftp scheme", url: "ftp://hooks.example.com", wantErr: "must use http or https"},
		{name: "no host", url: "https://", wantErr: "has no host"},
		{name: "negative timeout", url: "https://hooks.example.com", timeout: "-1s", wantErr: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.url, "", tt.timeout)

			_, err := Load(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
