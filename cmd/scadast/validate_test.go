package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchemaEmbedded(t *testing.T) {
	loader, err := loadSchema(defaultSchemaSentinel)
	require.NoError(t, err)
	require.NotNil(t, loader)
}

func TestCalculateComplianceAllValid(t *testing.T) {
	data := map[string]any{"statements": []any{map[string]any{}, map[string]any{}}}

	compliance := calculateCompliance(data, nil)
	assert.Equal(t, complianceMax, compliance)
}

func TestCountNodesCountsNestedStatements(t *testing.T) {
	data := map[string]any{
		"statements": []any{
			map[string]any{"kind": "Primitive"},
			map[string]any{"kind": "Transform"},
		},
	}

	assert.Equal(t, 3, countNodes(data))
}

func TestGetActualValueNavigatesPath(t *testing.T) {
	data := map[string]any{
		"statements": []any{
			map[string]any{"kind": "Primitive"},
		},
	}

	assert.Equal(t, "Primitive", getActualValue(data, "statements.0.kind"))
	assert.Equal(t, "", getActualValue(data, "statements.5.kind"))
}

func TestClassifyRecommendationDetectsKindEnum(t *testing.T) {
	recs := make(map[string]string)
	classifyRecommendation(recs, "statements.0.kind", "statements.0.kind must be one of the following: \"enum\"")
	assert.Contains(t, recs, "kind")
}
