package attest

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	protobundle "github.com/sigstore/protobuf-specs/gen/pb-go/bundle/v1"
	"google.golang.org/protobuf/encoding/protojson"
)

// DefaultSuffix is the fixed suffix appended to a distribution path to
// form its sidecar attestation path.
const DefaultSuffix = ".publish.attestation"

// Attestation is a PEP 740 publish attestation: a signed statement
// binding a distribution to a verified identity.
type Attestation struct {
	Version              int                  `json:"version"`
	VerificationMaterial VerificationMaterial `json:"verification_material"`
	Envelope             Envelope             `json:"envelope"`
}

// VerificationMaterial carries the signing certificate and any
// transparency log entries backing the attestation.
type VerificationMaterial struct {
	// Certificate is the base64-encoded DER signing certificate.
	Certificate string `json:"certificate"`

	// TransparencyEntries are the Rekor log entries, one JSON object
	// per entry.
	TransparencyEntries []json.RawMessage `json:"transparency_entries,omitempty"`
}

// Envelope holds the signed statement and its signature, both
// base64-encoded.
type Envelope struct {
	Statement string `json:"statement"`
	Signature string `json:"signature"`
}

// attestationFromBundle converts a Sigstore bundle into the PEP 740
// attestation shape.
func attestationFromBundle(bundle *protobundle.Bundle) (*Attestation, error) {
	envelope := bundle.GetDsseEnvelope()
	if envelope == nil {
		return nil, errors.New("bundle has no DSSE envelope")
	}
	if len(envelope.GetSignatures()) == 0 {
		return nil, errors.New("bundle envelope has no signatures")
	}

	material := bundle.GetVerificationMaterial()
	certDER, err := signingCertificate(material)
	if err != nil {
		return nil, err
	}

	var entries []json.RawMessage
	for _, entry := range material.GetTlogEntries() {
		raw, err := protojson.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("marshal transparency entry: %w", err)
		}
		entries = append(entries, json.RawMessage(raw))
	}

	return &Attestation{
		Version: 1,
		VerificationMaterial: VerificationMaterial{
			Certificate:         base64.StdEncoding.EncodeToString(certDER),
			TransparencyEntries: entries,
		},
		Envelope: Envelope{
			Statement: base64.StdEncoding.EncodeToString(envelope.GetPayload()),
			Signature: base64.StdEncoding.EncodeToString(envelope.GetSignatures()[0].GetSig()),
		},
	}, nil
}

// signingCertificate extracts the DER leaf certificate from the bundle
// verification material. Bundles at media type v0.3 carry a single
// certificate; older bundles carry a chain whose first element is the
// leaf.
func signingCertificate(material *protobundle.VerificationMaterial) ([]byte, error) {
	if cert := material.GetCertificate(); cert != nil {
		return cert.GetRawBytes(), nil
	}
	if chain := material.GetX509CertificateChain(); chain != nil && len(chain.GetCertificates()) > 0 {
		return chain.GetCertificates()[0].GetRawBytes(), nil
	}
	return nil, errors.New("bundle has no signing certificate")
}

// WriteFile persists the attestation as canonical JSON at path. The
// file is created exclusively: a sidecar that appeared since the
// preflight check still fails rather than being overwritten.
func (a *Attestation) WriteFile(path string) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal attestation: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrAttestationExists, path)
		}
		return fmt.Errorf("create attestation: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write attestation: %w", err)
	}
	return f.Close()
}
