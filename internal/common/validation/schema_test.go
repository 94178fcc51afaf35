package validation

import (
	"testing"

	"consultation-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	reg, err := registry.Default()
	require.NoError(t, err)
	v, err := NewValidator(reg)
	require.NoError(t, err)
	return v
}

func TestValidateInput(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name       string
		taskType   string
		variables  string
		valid      bool
		errorField string
	}{
		{
			name:      "answers object",
			taskType:  "analyze-responses",
			variables: `{"submissionId":"s-1","answers":{"company_size":"small"}}`,
			valid:     true,
		},
		{
			name:       "answers missing",
			taskType:   "analyze-responses",
			variables:  `{"submissionId":"s-1"}`,
			valid:      false,
			errorField: "answers",
		},
		{
			name:       "answers is an array",
			taskType:   "match-services",
			variables:  `{"answers":["small"]}`,
			valid:      false,
			errorField: "answers",
		},
		{
			name:       "qualification out of range",
			taskType:   "route-lead",
			variables:  `{"qualificationScore":140,"completeness":50}`,
			valid:      false,
			errorField: "qualificationScore",
		},
		{
			name:      "report from consultation",
			taskType:  "assemble-report",
			variables: `{"consultation":{"clientInfo":{}}}`,
			valid:     true,
		},
		{
			name:      "report needs a source",
			taskType:  "assemble-report",
			variables: `{"clientData":{}}`,
			valid:     false,
		},
		{
			name:      "unknown task type passes",
			taskType:  "unregistered",
			variables: `{}`,
			valid:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateInput(tt.taskType, []byte(tt.variables))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, result.GetErrorMessages())
			if tt.errorField != "" {
				assert.True(t, result.HasErrors(tt.errorField), result.GetErrorMessages())
			}
		})
	}
}

func TestValidateInput_MalformedJSON(t *testing.T) {
	v := newValidator(t)
	_, err := v.ValidateInput("route-lead", []byte(`{"qualificationScore":`))
	assert.Error(t, err)
}

func TestValidateActivityNaming(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)

	for _, activity := range reg.Activities {
		assert.NoError(t, ValidateActivityNaming(activity.ID), activity.ID)
	}
	assert.Error(t, ValidateActivityNaming("RouteLead"))
}
