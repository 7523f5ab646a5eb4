package randomorg

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/streamdraw/backend/pkg/api"
	"github.com/stretchr/testify/require"
)

const signedRandomBlob = `{"method":"generateSignedIntegers","hashedApiKey":"hashed-key",` +
	`"n":1,"min":0,"max":15,"replacement":true,"base":10,"data":[12],` +
	`"userData":"August Mega Giveaway","completionTime":"2026-08-25 10:00:00Z","serialNumber":42}`

func mockGenerator(rawBody string, lastBody *api.JSON) *api.MockAPIGenerator {
	generator := &api.MockAPIGenerator{}
	generator.MockClient.BodyFunc = func(body api.Body) api.Client {
		if j, ok := body.(api.JSON); ok && lastBody != nil {
			*lastBody = j
		}

		return &generator.MockClient
	}
	generator.MockClient.POSTFunc = func(ctx context.Context) (*api.Response, error) {
		body := api.JSON{}
		if err := json.Unmarshal([]byte(rawBody), &body); err != nil {
			return nil, err
		}

		return &api.Response{Code: 200, Body: body, RawBody: []byte(rawBody)}, nil
	}

	return generator
}

func Test_defaultClient_GenerateSignedIntegers(t *testing.T) {
	var lastBody api.JSON
	generator := mockGenerator(
		`{"jsonrpc":"2.0","result":{"random":`+signedRandomBlob+`,"signature":"sig=="},"id":"1"}`,
		&lastBody,
	)

	client := NewClientWithGenerator(generator, "test-api-key")
	result, err := client.GenerateSignedIntegers(
		context.Background(), 1, 0, 15, true, "August Mega Giveaway")
	require.NoError(t, err)

	// The random blob must survive byte-for-byte; the signature verifies
	// against exactly this serialization.
	require.Equal(t, signedRandomBlob, string(result.Random))
	require.Equal(t, "sig==", result.Signature)
	require.Equal(t, []int{12}, result.Parsed.Data)
	require.Equal(t, "generateSignedIntegers", result.Parsed.Method)
	require.Equal(t, 42, result.Parsed.SerialNumber)

	params, ok := lastBody["params"].(api.JSON)
	require.True(t, ok)
	require.Equal(t, "test-api-key", params["apiKey"])
	require.Equal(t, 0, params["min"])
	require.Equal(t, 15, params["max"])
	require.Equal(t, true, params["replacement"])
	require.Equal(t, "August Mega Giveaway", params["userData"])
}

func Test_defaultClient_GenerateSignedIntegers_Errors(t *testing.T) {
	client := NewClientWithGenerator(mockGenerator(
		`{"jsonrpc":"2.0","error":{"code":202,"message":"API key stopped"},"id":"1"}`, nil,
	), "test-api-key")
	_, err := client.GenerateSignedIntegers(context.Background(), 1, 0, 15, true, "")
	require.Error(t, err)
	require.Equal(t, "random.org error 202: API key stopped", err.Error())

	client = NewClientWithGenerator(mockGenerator(
		`{"jsonrpc":"2.0","result":{"random":{"data":[1,2]},"signature":"sig"},"id":"1"}`, nil,
	), "test-api-key")
	_, err = client.GenerateSignedIntegers(context.Background(), 1, 0, 15, true, "")
	require.Error(t, err)
	require.Equal(t, "expected 1 random values, got 2", err.Error())

	client = NewClientWithGenerator(mockGenerator(
		`{"jsonrpc":"2.0","result":{"signature":"sig"},"id":"1"}`, nil,
	), "test-api-key")
	_, err = client.GenerateSignedIntegers(context.Background(), 1, 0, 15, true, "")
	require.Error(t, err)
}

func Test_defaultClient_VerifySignature(t *testing.T) {
	client := NewClientWithGenerator(mockGenerator(
		`{"jsonrpc":"2.0","result":{"authenticity":true},"id":"1"}`, nil,
	), "test-api-key")
	authentic, err := client.VerifySignature(
		context.Background(), []byte(signedRandomBlob), "sig==")
	require.NoError(t, err)
	require.True(t, authentic)

	client = NewClientWithGenerator(mockGenerator(
		`{"jsonrpc":"2.0","result":{"authenticity":false},"id":"1"}`, nil,
	), "test-api-key")
	authentic, err = client.VerifySignature(
		context.Background(), []byte(signedRandomBlob), "tampered")
	require.NoError(t, err)
	require.False(t, authentic)
}

func Test_VerificationURL(t *testing.T) {
	url := VerificationURL([]byte(`{"data":[12]}`), "sig+/==")
	require.True(t, strings.HasPrefix(url, "https://api.random.org/signatures/form?format=json&random="))

	// The base64 of the blob and the signature are percent-encoded, so the
	// padding and plus signs of base64 never leak into the query string.
	require.Contains(t, url, "&random=eyJkYXRhIjpbMTJdfQ%3D%3D")
	require.Contains(t, url, "&signature=sig%2B%2F%3D%3D")
}
