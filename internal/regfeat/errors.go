package regfeat

import (
	"fmt"
	"strings"

	"github.com/ironsheep/region-features-mcp/internal/labelmap"
)

// InvalidInputError reports an unusable label map or label set.
type InvalidInputError = labelmap.InvalidInputError

// UnknownFeatureError reports a feature ID without registered factory.
type UnknownFeatureError struct {
	ID ID
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("unknown feature %q", e.ID)
}

// CyclicDependencyError reports a feature that transitively requires itself.
// Path lists the features from the first occurrence of the repeated ID to its
// second occurrence.
type CyclicDependencyError struct {
	Path []ID
}

func (e *CyclicDependencyError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = string(id)
	}
	return "cyclic feature dependency: " + strings.Join(parts, " -> ")
}

// NotComputedError reports a missing result.
type NotComputedError struct {
	ID ID
}

func (e *NotComputedError) Error() string {
	return fmt.Sprintf("feature %q has not been computed", e.ID)
}

// UnknownUnitPolicyError reports an unrecognized UnitDisplay value.
type UnknownUnitPolicyError struct {
	Value string
}

func (e *UnknownUnitPolicyError) Error() string {
	return fmt.Sprintf("unknown unit display policy %q", e.Value)
}

// TypeMismatchError reports a stored result whose variant differs from the
// one a consumer expects.
type TypeMismatchError struct {
	ID   ID
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("feature %q: expected result of type %s, got %s", e.ID, e.Want, e.Got)
}
