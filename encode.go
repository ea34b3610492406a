package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// snapshotKeys lists the collection keys every snapshot document must carry,
// in canonical order. This is the literal backup/restore contract.
var snapshotKeys = []string{
	"incomes", "expenses", "loans", "borrowed",
	"reminders", "chitFunds", "otherSavings",
}

// EncodeSnapshot writes the snapshot as a single indented JSON document with
// canonical key order. The output is exactly what ImportSnapshot accepts.
func EncodeSnapshot(w io.Writer, s *Snapshot) error {
	var jw jsonObjectWriter
	jw.Append("profile", s.Profile)
	jw.Append("settings", s.Settings)
	jw.Append("incomes", s.Incomes)
	jw.Append("expenses", s.Expenses)
	jw.Append("loans", s.Loans)
	jw.Append("borrowed", s.Borrowed)
	jw.Append("reminders", s.Reminders)
	jw.Append("chitFunds", s.ChitFunds)
	jw.Append("otherSavings", s.OtherSavings)
	jw.Append("notificationHistory", s.NotificationHistory)

	data, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("could not indent snapshot: %w", err)
	}
	out.WriteByte('\n')

	_, err = w.Write(out.Bytes())
	return err
}

// DecodeSnapshot reads a snapshot document, applying forward migration
// defaults for fields older documents may lack.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("could not decode snapshot: %w", err)
	}
	s.normalize()
	return &s, nil
}

// checkStructure performs the structural sanity check for import: every
// top-level entity collection must be present and be an array. It never
// mutates anything; a failing document is rejected outright.
func checkStructure(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("not a JSON object: %w", err)
	}
	for _, key := range snapshotKeys {
		raw, ok := doc[key]
		if !ok {
			return fmt.Errorf("missing top-level %q array", key)
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return fmt.Errorf("top-level %q is not an array", key)
		}
	}
	return nil
}

// ImportSnapshot decodes a backup document after the structural sanity
// check. Malformed documents are rejected with no partial result.
func ImportSnapshot(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read backup: %w", err)
	}
	if err := checkStructure(data); err != nil {
		return nil, fmt.Errorf("invalid backup document: %w", err)
	}
	return DecodeSnapshot(bytes.NewReader(data))
}
