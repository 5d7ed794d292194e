// Package filter narrows JSON response bodies with JMESPath expressions.
package filter

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Apply evaluates a JMESPath expression against a JSON body and returns the
// result re-marshalled with indentation. The body is returned untouched when
// the expression is empty.
func Apply(body string, expression string) (string, error) {
	if expression == "" {
		return body, nil
	}

	var data interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return "", fmt.Errorf("response body is not JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

// Validate checks a JMESPath expression without evaluating it
func Validate(expression string) error {
	if expression == "" {
		return nil
	}
	if _, err := jmespath.Compile(expression); err != nil {
		return fmt.Errorf("invalid JMESPath expression: %w", err)
	}
	return nil
}
