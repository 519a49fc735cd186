package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"featurestore/internal/ports"
	"featurestore/internal/shared"
	"featurestore/internal/types"
)

// FeatureServiceHTTPAdapter talks to an ArcGIS-style REST layer endpoint.
type FeatureServiceHTTPAdapter struct {
	Client     *http.Client
	Token      string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

const defaultServiceTimeout = 30 * time.Second
const defaultServiceRetries = 3
const defaultServiceRetryDelay = 200 * time.Millisecond
const maxServiceRetryDelay = 2 * time.Second

// Requests whose encoded parameters exceed this length are sent as a form
// POST instead of a GET.
const maxQueryStringLength = 2000

func NewFeatureServiceHTTPAdapter(timeoutSec int, retries int, retryDelayMs int) FeatureServiceHTTPAdapter {
	timeout := normalizeServiceTimeout(timeoutSec)
	return FeatureServiceHTTPAdapter{
		Client:     &http.Client{Timeout: timeout},
		Timeout:    timeout,
		Retries:    normalizeServiceRetries(retries),
		RetryDelay: normalizeServiceRetryDelay(retryDelayMs),
	}
}

func (a FeatureServiceHTTPAdapter) FetchMetadata(ctx context.Context, endpoint string) (types.ServiceMetadata, error) {
	if strings.TrimSpace(endpoint) == "" {
		return types.ServiceMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("service endpoint is empty")
	}
	params := url.Values{}
	params.Set("f", "json")
	body, err := a.send(ctx, shared.NormalizeEndpoint(endpoint), params)
	if err != nil {
		return types.ServiceMetadata{}, err
	}
	var metadata types.ServiceMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		return types.ServiceMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse service metadata").
			WithCause(err)
	}
	if metadata.Fields == nil {
		return types.ServiceMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("service metadata has no fields")
	}
	log.Debug().
		Str("url", endpoint).
		Int("fields", len(metadata.Fields)).
		Str("capabilities", metadata.Capabilities).
		Msg("service metadata fetched")
	return metadata, nil
}

func (a FeatureServiceHTTPAdapter) Query(ctx context.Context, endpoint string, query types.QueryRequest) (types.FeatureSet, error) {
	if strings.TrimSpace(endpoint) == "" {
		return types.FeatureSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("service endpoint is empty")
	}
	body, err := a.send(ctx, shared.JoinEndpoint(endpoint, "query"), query.Values())
	if err != nil {
		return types.FeatureSet{}, err
	}
	var featureSet types.FeatureSet
	if err := json.Unmarshal(body, &featureSet); err != nil {
		return types.FeatureSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse feature set").
			WithCause(err)
	}
	return featureSet, nil
}

func (a FeatureServiceHTTPAdapter) send(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	retries := normalizeServiceRetries(a.Retries)
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		body, retry, err := a.sendOnce(ctx, endpoint, params)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == retries-1 {
			return nil, err
		}
		log.Debug().
			Str("url", endpoint).
			Int("attempt", attempt+1).
			Err(err).
			Msg("retrying service request")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.serviceRetryDelay(attempt)):
		}
	}
	if lastErr == nil {
		lastErr = errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("service request failed")
	}
	return nil, lastErr
}

func (a FeatureServiceHTTPAdapter) sendOnce(ctx context.Context, endpoint string, params url.Values) ([]byte, bool, error) {
	req, err := a.newRequest(ctx, endpoint, params)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := a.httpClient().Do(req)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("service request failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read service response").
			WithCause(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retry := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
		code := errbuilder.CodeInternal
		if resp.StatusCode == http.StatusNotFound {
			code = errbuilder.CodeNotFound
		}
		return nil, retry, errbuilder.New().
			WithCode(code).
			WithMsg("service request failed").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, endpoint, strings.TrimSpace(string(body))))
	}
	if err := decodeServiceError(body); err != nil {
		return nil, false, err
	}
	return body, false, nil
}

func (a FeatureServiceHTTPAdapter) newRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	target, err := url.Parse(endpoint)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid service endpoint").
			WithCause(err)
	}
	merged := target.Query()
	for key, values := range params {
		merged[key] = values
	}
	if strings.TrimSpace(a.Token) != "" {
		merged.Set("token", a.Token)
	}
	encoded := merged.Encode()

	var req *http.Request
	if len(encoded) > maxQueryStringLength {
		target.RawQuery = ""
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewBufferString(encoded))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		target.RawQuery = encoded
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create service request").
			WithCause(err)
	}
	return req, nil
}

func (a FeatureServiceHTTPAdapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return &http.Client{Timeout: normalizeServiceTimeout(int(a.Timeout / time.Second))}
}

func (a FeatureServiceHTTPAdapter) serviceRetryDelay(attempt int) time.Duration {
	delay := normalizeServiceRetryDelay(int(a.RetryDelay/time.Millisecond)) * time.Duration(1<<attempt)
	if delay > maxServiceRetryDelay {
		delay = maxServiceRetryDelay
	}
	jitter := time.Duration(time.Now().UnixNano() % int64(delay/2+1))
	return delay + jitter
}

// serviceErrorEnvelope is the body REST layers return, with status 200,
// when a request is rejected.
type serviceErrorEnvelope struct {
	Error *struct {
		Code    int      `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func decodeServiceError(body []byte) error {
	var envelope serviceErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return nil
	}
	code := errbuilder.CodeInternal
	switch envelope.Error.Code {
	case http.StatusBadRequest:
		code = errbuilder.CodeInvalidArgument
	case http.StatusUnauthorized, http.StatusForbidden, 498, 499:
		code = errbuilder.CodePermissionDenied
	case http.StatusNotFound:
		code = errbuilder.CodeNotFound
	}
	message := strings.TrimSpace(envelope.Error.Message)
	if len(envelope.Error.Details) > 0 {
		message = strings.TrimSpace(message + ": " + strings.Join(envelope.Error.Details, "; "))
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg("service returned an error").
		WithCause(fmt.Errorf("code=%d message=%s", envelope.Error.Code, message))
}

func normalizeServiceTimeout(value int) time.Duration {
	timeout := time.Duration(value) * time.Second
	if timeout <= 0 {
		return defaultServiceTimeout
	}
	return timeout
}

func normalizeServiceRetries(value int) int {
	if value <= 0 {
		return defaultServiceRetries
	}
	return value
}

func normalizeServiceRetryDelay(value int) time.Duration {
	delay := time.Duration(value) * time.Millisecond
	if delay <= 0 {
		return defaultServiceRetryDelay
	}
	return delay
}

var _ ports.FeatureServicePort = FeatureServiceHTTPAdapter{}
