package attest

import (
	"encoding/json"
	"fmt"
)

const (
	statementType = "https://in-toto.io/Statement/v1"

	// PublishPredicateType identifies the PyPI publish predicate carried
	// by every attestation this package produces.
	PublishPredicateType = "https://docs.pypi.org/attestations/publish/v1"

	payloadType = "application/vnd.in-toto+json"
)

// statement is the in-toto v1 statement signed for a distribution. It
// is the DSSE payload, so its encoding must stay byte-stable.
type statement struct {
	Type          string    `json:"_type"`
	Subject       []subject `json:"subject"`
	PredicateType string    `json:"predicateType"`
	Predicate     any       `json:"predicate"`
}

type subject struct {
	Name   string            `json:"name"`
	Digest map[string]string `json:"digest"`
}

// statementJSON encodes the in-toto statement for the distribution.
// The publish predicate is intentionally empty: the statement binds the
// distribution digest to the signing identity and nothing more.
func statementJSON(dist Distribution) ([]byte, error) {
	stmt := statement{
		Type: statementType,
		Subject: []subject{{
			Name:   dist.Name,
			Digest: map[string]string{"sha256": dist.Digest.Encoded()},
		}},
		PredicateType: PublishPredicateType,
		Predicate:     nil,
	}

	data, err := json.Marshal(stmt)
	if err != nil {
		return nil, fmt.Errorf("marshal statement: %w", err)
	}
	return data, nil
}
