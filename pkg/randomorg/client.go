package randomorg

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/streamdraw/backend/pkg/api"
	"github.com/streamdraw/backend/pkg/xcontext"
)

const (
	DefaultEndpoint = "https://api.random.org"
	invokePath      = "/json-rpc/4/invoke"
	verifyFormURL   = "https://api.random.org/signatures/form"
)

// Client is the binding against the random.org signed API. The random field
// of a signed response is kept as the verbatim JSON blob the service
// returned, because the detached signature covers exactly that serialization.
type Client interface {
	GenerateSignedIntegers(ctx context.Context, n, min, max int, replacement bool, userData string) (*SignedResult, error)
	VerifySignature(ctx context.Context, random json.RawMessage, signature string) (bool, error)
}

// SignedRandom is the typed view over the fields of the random blob the draw
// engine inspects. Everything else stays opaque inside SignedResult.Random.
type SignedRandom struct {
	Method         string `mapstructure:"method"`
	HashedAPIKey   string `mapstructure:"hashedApiKey"`
	Data           []int  `mapstructure:"data"`
	CompletionTime string `mapstructure:"completionTime"`
	SerialNumber   int    `mapstructure:"serialNumber"`
}

type SignedResult struct {
	Random    json.RawMessage
	Signature string
	Parsed    SignedRandom
}

type defaultClient struct {
	generator api.Generator
	apiKey    string
}

func NewClient(ctx context.Context) (*defaultClient, error) {
	cfg := xcontext.Configs(ctx).RandomOrg
	if cfg.APIKey == "" {
		return nil, errors.New("no random.org api key configured")
	}

	endpoints := cfg.Endpoints
	if len(endpoints) == 0 {
		endpoints = []string{DefaultEndpoint}
	}

	return &defaultClient{
		generator: api.NewGenerator(endpoints...),
		apiKey:    cfg.APIKey,
	}, nil
}

func NewClientWithGenerator(generator api.Generator, apiKey string) *defaultClient {
	return &defaultClient{generator: generator, apiKey: apiKey}
}

func (c *defaultClient) GenerateSignedIntegers(
	ctx context.Context, n, min, max int, replacement bool, userData string,
) (*SignedResult, error) {
	_, rawResult, err := c.invoke(ctx, "generateSignedIntegers", api.JSON{
		"apiKey":      c.apiKey,
		"n":           n,
		"min":         min,
		"max":         max,
		"replacement": replacement,
		"userData":    userData,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Random    json.RawMessage `json:"random"`
		Signature string          `json:"signature"`
	}
	if err := json.Unmarshal(rawResult, &result); err != nil {
		return nil, err
	}

	if len(result.Random) == 0 || result.Signature == "" {
		return nil, errors.New("signed response misses random or signature")
	}

	parsed, err := parseRandom(result.Random)
	if err != nil {
		return nil, err
	}

	if len(parsed.Data) != n {
		return nil, fmt.Errorf("expected %d random values, got %d", n, len(parsed.Data))
	}

	return &SignedResult{
		Random:    result.Random,
		Signature: result.Signature,
		Parsed:    *parsed,
	}, nil
}

func (c *defaultClient) VerifySignature(
	ctx context.Context, random json.RawMessage, signature string,
) (bool, error) {
	body, _, err := c.invoke(ctx, "verifySignature", api.JSON{
		"random":    json.RawMessage(random),
		"signature": signature,
	})
	if err != nil {
		return false, err
	}

	return body.GetBool("result.authenticity")
}

// invoke performs one JSON-RPC call and returns both views of the response:
// the parsed body for field access and the raw result bytes, which callers
// use when an embedded blob must stay byte-identical for verification.
func (c *defaultClient) invoke(
	ctx context.Context, method string, params api.JSON,
) (api.JSON, json.RawMessage, error) {
	resp, err := c.generator.New(invokePath).
		Body(api.JSON{
			"jsonrpc": "2.0",
			"method":  method,
			"params":  params,
			"id":      uuid.NewString(),
		}).
		POST(ctx)
	if err != nil {
		return nil, nil, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, nil, errors.New("non-object response from random.org")
	}

	if errValue, err := body.Get("error"); err == nil && errValue != nil {
		errBody, err := body.GetJSON("error")
		if err != nil {
			return nil, nil, err
		}

		code, _ := errBody.GetInt("code")
		message, _ := errBody.GetString("message")
		return nil, nil, fmt.Errorf("random.org error %d: %s", code, message)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(resp.RawBody, &envelope); err != nil {
		return nil, nil, err
	}

	if len(envelope.Result) == 0 {
		return nil, nil, errors.New("empty result from random.org")
	}

	return body, envelope.Result, nil
}

func parseRandom(random json.RawMessage) (*SignedRandom, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(random, &fields); err != nil {
		return nil, err
	}

	var parsed SignedRandom
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &parsed,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(fields); err != nil {
		return nil, err
	}

	return &parsed, nil
}

// VerificationURL builds the public form link proving the signed payload was
// produced by random.org.
func VerificationURL(random json.RawMessage, signature string) string {
	encodedRandom := base64.StdEncoding.EncodeToString(random)
	return fmt.Sprintf("%s?format=json&random=%s&signature=%s",
		verifyFormURL, api.PercentEncode(encodedRandom), api.PercentEncode(signature))
}
