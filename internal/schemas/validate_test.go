package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Job(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"Full job", `{"title":"Backend Engineer","required_skills":["Python","Go"],"keywords":["api"],"min_experience":5}`, false},
		{"Empty object", `{}`, false},
		{"Priorities in range", `{"required_skills":["Go"],"priorities":{"go":0.95}}`, false},
		{"Negative experience", `{"min_experience":-1}`, true},
		{"Skills not strings", `{"required_skills":[1,2]}`, true},
		{"Priority above one", `{"priorities":{"go":1.5}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Job, []byte(tt.doc))
			if tt.wantErr {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_Pool(t *testing.T) {
	valid := `[{"resume_id":"a","raw_score":70,"breakdown":{"skill_match":80,"experience_years":6.5}}]`
	assert.NoError(t, Validate(Pool, []byte(valid)))

	missingBreakdown := `[{"raw_score":70}]`
	err := Validate(Pool, []byte(missingBreakdown))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)

	outOfRange := `[{"raw_score":170,"breakdown":{"skill_match":80,"experience_years":1}}]`
	assert.Error(t, Validate(Pool, []byte(outOfRange)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(Job, []byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestSchema_Embedded(t *testing.T) {
	for _, name := range []string{Taxonomy, Job, Pool} {
		data, err := Schema(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), `"$schema"`)
	}
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}
