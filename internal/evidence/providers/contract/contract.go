// Package contract holds reusable checks every evidence provider must pass.
package contract

import (
	"context"
	"testing"

	"eidreader/internal/evidence/providers"
)

// ContractTest defines a test case for provider contract validation
type ContractTest struct {
	Name         string
	Provider     providers.Provider
	Input        map[string]string
	ExpectedType providers.ProviderType
	ValidateFunc func(evidence *providers.Evidence) error
}

// ContractSuite is a collection of contract tests for a provider
type ContractSuite struct {
	ProviderID      string
	ProviderVersion string
	Tests           []ContractTest
}

// Run executes all contract tests in the suite
func (s *ContractSuite) Run(t *testing.T) {
	for _, test := range s.Tests {
		t.Run(test.Name, func(t *testing.T) {
			evidence, err := test.Provider.Lookup(context.Background(), test.Input)
			if err != nil {
				t.Fatalf("provider lookup failed: %v", err)
			}

			if evidence.ProviderID != s.ProviderID {
				t.Errorf("expected provider ID %s, got %s", s.ProviderID, evidence.ProviderID)
			}
			if evidence.ProviderType != test.ExpectedType {
				t.Errorf("expected type %s, got %s", test.ExpectedType, evidence.ProviderType)
			}
			if evidence.Confidence < 0 || evidence.Confidence > 1.0 {
				t.Errorf("confidence %f out of range [0, 1]", evidence.Confidence)
			}
			if evidence.CheckedAt.IsZero() {
				t.Error("CheckedAt not set")
			}
			if v := evidence.Metadata["provider_version"]; s.ProviderVersion != "" && v != s.ProviderVersion {
				t.Errorf("expected provider version %s, got %q", s.ProviderVersion, v)
			}

			if test.ValidateFunc != nil {
				if err := test.ValidateFunc(evidence); err != nil {
					t.Errorf("custom validation failed: %v", err)
				}
			}
		})
	}
}

// CapabilityTest validates that provider capabilities are correctly declared
// and that every declared field shows up in evidence data.
type CapabilityTest struct {
	Provider providers.Provider
	// Input, when set, is looked up to check declared fields against real evidence.
	Input map[string]string
}

// Run executes a capability test
func (ct *CapabilityTest) Run(t *testing.T) {
	caps := ct.Provider.Capabilities()

	if caps.Protocol == "" {
		t.Error("protocol not set")
	}
	if caps.Type == "" {
		t.Error("type not set")
	}
	if caps.Version == "" {
		t.Error("version not set")
	}
	if len(caps.Fields) == 0 {
		t.Error("no field capabilities declared")
	}
	if len(caps.Filters) == 0 {
		t.Error("no filters declared")
	}

	if ct.Input == nil {
		return
	}
	evidence, err := ct.Provider.Lookup(context.Background(), ct.Input)
	if err != nil {
		t.Fatalf("provider lookup failed: %v", err)
	}
	for _, f := range caps.Fields {
		if _, ok := evidence.Data[f.FieldName]; f.Available && !ok {
			t.Errorf("declared field %s missing from evidence", f.FieldName)
		}
	}
}

// ErrorContractTest validates that provider errors follow the taxonomy
type ErrorContractTest struct {
	Name          string
	Provider      providers.Provider
	Input         map[string]string
	ExpectedError providers.ErrorCategory
	ExpectedRetry bool
}

// Run executes an error contract test
func (ect *ErrorContractTest) Run(t *testing.T) {
	_, err := ect.Provider.Lookup(context.Background(), ect.Input)
	if err == nil {
		t.Fatal("expected error but got none")
	}

	if category := providers.GetCategory(err); category != ect.ExpectedError {
		t.Errorf("expected error category %s, got %s", ect.ExpectedError, category)
	}
	if isRetryable := providers.IsRetryable(err); isRetryable != ect.ExpectedRetry {
		t.Errorf("expected retryable=%v, got %v", ect.ExpectedRetry, isRetryable)
	}
}
