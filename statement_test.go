package attest

import (
	"encoding/json"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementJSON(t *testing.T) {
	t.Parallel()

	dist := Distribution{
		Name:   "pkg-1.0-py3-none-any.whl",
		Digest: digest.FromString("payload"),
		Size:   7,
	}

	data, err := statementJSON(dist)
	require.NoError(t, err)

	var stmt map[string]any
	require.NoError(t, json.Unmarshal(data, &stmt))

	assert.Equal(t, "https://in-toto.io/Statement/v1", stmt["_type"])
	assert.Equal(t, PublishPredicateType, stmt["predicateType"])
	assert.Nil(t, stmt["predicate"])

	subjects, ok := stmt["subject"].([]any)
	require.True(t, ok)
	require.Len(t, subjects, 1)

	subj := subjects[0].(map[string]any)
	assert.Equal(t, dist.Name, subj["name"])

	digests := subj["digest"].(map[string]any)
	assert.Equal(t, dist.Digest.Encoded(), digests["sha256"])
	assert.Len(t, digests, 1)
}
