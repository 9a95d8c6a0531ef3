// Package diff renders a unified diff between two snapshots' diet payloads.
package diff

import (
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/kamilw/dietplan/internal/domain"
)

// Snapshots returns a unified diff of the two snapshots' payloads, oldest
// conventionally passed first. An empty string means the payloads are equal.
func Snapshots(a, b *domain.Snapshot) (string, error) {
	aText, err := payloadText(a)
	if err != nil {
		return "", err
	}
	bText, err := payloadText(b)
	if err != nil {
		return "", err
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(aText),
		B:        difflib.SplitLines(bText),
		FromFile: label(a),
		ToFile:   label(b),
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("failed to compute diff: %w", err)
	}
	return text, nil
}

func payloadText(s *domain.Snapshot) (string, error) {
	data, err := json.MarshalIndent(s.Payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode payload of %s: %w", s.UUID, err)
	}
	return string(data) + "\n", nil
}

func label(s *domain.Snapshot) string {
	return fmt.Sprintf("%s (%s)", s.UUID, domain.FormatTimestamp(s.CreatedAt))
}
