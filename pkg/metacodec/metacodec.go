// Package metacodec carries attributes that have no dedicated store column.
//
// The legacy form appends a sentinel-delimited JSON block to a free-text
// field. Newer schemas keep the attributes in a JSON column instead. Reads
// accept both forms, so rows written by either writer stay readable.
package metacodec

import (
	"encoding/json"
	"fmt"
	"strings"

	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"
)

// Sentinel marks the start of the packed block inside the text field.
const Sentinel = "__METADATA__"

// Record fields the writers use.
const (
	NotesField    = "notes"
	MetadataField = "metadata"
)

// Write modes accepted by NewWriter.
const (
	ModeNotes  = "notes"
	ModeColumn = "column"
)

// Unpacked is the result of splitting a packed text field.
type Unpacked struct {
	Note string
	Aux  map[string]any
}

// Pack appends aux to note as a sentinel block.
func Pack(note string, aux any) (string, error) {
	raw, err := json.Marshal(aux)
	if err != nil {
		return "", fmt.Errorf("pack metadata: %w", err)
	}
	return note + "\n\n" + Sentinel + "\n" + string(raw), nil
}

// Unpack splits text at the first sentinel. Without a sentinel the whole text
// is the note. When the block cannot be decoded the whole text is returned as
// the note together with a *apperror.MappingError.
func Unpack(text string) (Unpacked, error) {
	idx := strings.Index(text, Sentinel)
	if idx < 0 {
		return Unpacked{Note: text}, nil
	}

	payload := strings.TrimSpace(text[idx+len(Sentinel):])
	var aux map[string]any
	if err := json.Unmarshal([]byte(payload), &aux); err != nil {
		return Unpacked{Note: text}, &apperror.MappingError{Field: NotesField, Err: err}
	}
	return Unpacked{Note: strings.TrimSpace(text[:idx]), Aux: aux}, nil
}

// Writer stores a note and its auxiliary attributes into a domain-shape
// record before it goes to the gateway.
type Writer interface {
	Write(rec domain.Record, note string, aux map[string]any) error
}

// NotesWriter packs aux into the notes field. It works on schemas that have
// no metadata column.
type NotesWriter struct{}

func (NotesWriter) Write(rec domain.Record, note string, aux map[string]any) error {
	packed, err := Pack(note, aux)
	if err != nil {
		return err
	}
	rec[NotesField] = packed
	for k := range aux {
		delete(rec, k)
	}
	return nil
}

// ColumnWriter keeps notes clean and stores aux in the metadata JSON column.
type ColumnWriter struct{}

func (ColumnWriter) Write(rec domain.Record, note string, aux map[string]any) error {
	rec[NotesField] = note
	rec[MetadataField] = aux
	for k := range aux {
		delete(rec, k)
	}
	return nil
}

// NewWriter returns the writer for mode; anything but ModeColumn selects the
// notes writer.
func NewWriter(mode string) Writer {
	if strings.EqualFold(mode, ModeColumn) {
		return ColumnWriter{}
	}
	return NotesWriter{}
}

// Merge lifts packed attributes of a domain-shape record back into top-level
// fields. The metadata column is read first, then any block in notes; block
// values win. The returned record is always usable, even when err is a
// *apperror.MappingError.
func Merge(rec domain.Record) (domain.Record, error) {
	if rec == nil {
		return nil, nil
	}
	out := rec.Clone()
	var mergeErr error

	if raw, ok := out[MetadataField]; ok {
		delete(out, MetadataField)
		aux, err := columnValue(raw)
		if err != nil {
			mergeErr = err
		}
		lift(out, aux)
	}

	if text, ok := out[NotesField].(string); ok {
		u, err := Unpack(text)
		if err != nil && mergeErr == nil {
			mergeErr = err
		}
		out[NotesField] = u.Note
		lift(out, u.Aux)
	}

	return out, mergeErr
}

func lift(dst domain.Record, aux map[string]any) {
	for k, v := range aux {
		if v != nil {
			dst[k] = v
		}
	}
}

func columnValue(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case domain.Record:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return decodeColumn([]byte(v))
	case []byte:
		return decodeColumn(v)
	default:
		return nil, &apperror.MappingError{Field: MetadataField, Err: fmt.Errorf("unexpected %T", raw)}
	}
}

func decodeColumn(raw []byte) (map[string]any, error) {
	var aux map[string]any
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, &apperror.MappingError{Field: MetadataField, Err: err}
	}
	return aux, nil
}
