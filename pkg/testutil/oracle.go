package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streamdraw/backend/pkg/randomorg"
)

// MockOracle substitutes the random.org binding in tests. Without overrides
// it behaves like a well-behaved oracle that always draws min and verifies
// every signature.
type MockOracle struct {
	GenerateFunc func(ctx context.Context, n, min, max int, replacement bool, userData string) (*randomorg.SignedResult, error)
	VerifyFunc   func(ctx context.Context, random json.RawMessage, signature string) (bool, error)

	// LastUserData keeps the annotation of the latest generate call so tests
	// can assert on the public audit trail.
	LastUserData string
}

func (o *MockOracle) GenerateSignedIntegers(
	ctx context.Context, n, min, max int, replacement bool, userData string,
) (*randomorg.SignedResult, error) {
	o.LastUserData = userData
	if o.GenerateFunc != nil {
		return o.GenerateFunc(ctx, n, min, max, replacement, userData)
	}

	return SignedResultOf(min, userData), nil
}

func (o *MockOracle) VerifySignature(
	ctx context.Context, random json.RawMessage, signature string,
) (bool, error) {
	if o.VerifyFunc != nil {
		return o.VerifyFunc(ctx, random, signature)
	}

	return true, nil
}

// SignedResultOf fabricates a plausible signed payload drawing value.
func SignedResultOf(value int, userData string) *randomorg.SignedResult {
	random, err := json.Marshal(map[string]any{
		"method":         "generateSignedIntegers",
		"hashedApiKey":   "mock-hashed-api-key",
		"n":              1,
		"data":           []int{value},
		"userData":       userData,
		"completionTime": time.Now().UTC().Format("2006-01-02 15:04:05Z"),
		"serialNumber":   1,
	})
	if err != nil {
		panic(err)
	}

	return &randomorg.SignedResult{
		Random:    random,
		Signature: fmt.Sprintf("mock-signature-%d", value),
		Parsed: randomorg.SignedRandom{
			Method:       "generateSignedIntegers",
			HashedAPIKey: "mock-hashed-api-key",
			Data:         []int{value},
			SerialNumber: 1,
		},
	}
}
