package metacodec_test

import (
	"errors"
	"testing"

	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"
	"go-hiring-sync/pkg/metacodec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpack(t *testing.T) {
	t.Run("Should round trip note and attributes", func(t *testing.T) {
		aux := map[string]any{"mode": "online", "interviewers": []any{"u1", "u2"}}
		packed, err := metacodec.Pack("Bring laptop  ", aux)
		require.NoError(t, err)
		assert.Contains(t, packed, "\n\n"+metacodec.Sentinel+"\n")

		u, err := metacodec.Unpack(packed)
		require.NoError(t, err)
		assert.Equal(t, "Bring laptop", u.Note)
		assert.Equal(t, aux, u.Aux)
	})

	t.Run("Should treat text without sentinel as the whole note", func(t *testing.T) {
		u, err := metacodec.Unpack("plain notes")
		require.NoError(t, err)
		assert.Equal(t, "plain notes", u.Note)
		assert.Nil(t, u.Aux)
	})

	t.Run("Should return the raw text and a mapping error for a malformed block", func(t *testing.T) {
		text := "hello\n\n" + metacodec.Sentinel + "\n{not json"
		u, err := metacodec.Unpack(text)

		var mapErr *apperror.MappingError
		require.True(t, errors.As(err, &mapErr))
		assert.Equal(t, text, u.Note)
		assert.Nil(t, u.Aux)
	})

	t.Run("Should pack an empty note", func(t *testing.T) {
		packed, err := metacodec.Pack("", map[string]any{"mode": "offline"})
		require.NoError(t, err)

		u, err := metacodec.Unpack(packed)
		require.NoError(t, err)
		assert.Equal(t, "", u.Note)
		assert.Equal(t, "offline", u.Aux["mode"])
	})
}

func TestWriters(t *testing.T) {
	aux := map[string]any{"mode": "online", "interviewers": []string{"u1"}}

	t.Run("Should pack into notes by default", func(t *testing.T) {
		rec := domain.Record{"notes": "n", "mode": "online", "interviewers": []string{"u1"}}
		require.NoError(t, metacodec.NewWriter("").Write(rec, "n", aux))

		assert.NotContains(t, rec, "mode")
		assert.NotContains(t, rec, "interviewers")
		assert.Contains(t, rec["notes"], metacodec.Sentinel)
	})

	t.Run("Should keep notes clean in column mode", func(t *testing.T) {
		rec := domain.Record{"mode": "online"}
		require.NoError(t, metacodec.NewWriter("column").Write(rec, "n", aux))

		assert.Equal(t, "n", rec["notes"])
		assert.Equal(t, aux, rec["metadata"])
		assert.NotContains(t, rec, "mode")
	})
}

func TestMerge(t *testing.T) {
	t.Run("Should lift attributes out of notes", func(t *testing.T) {
		packed, _ := metacodec.Pack("n", map[string]any{"mode": "online", "interviewers": []any{"u1"}})
		out, err := metacodec.Merge(domain.Record{"id": "i1", "notes": packed})

		require.NoError(t, err)
		assert.Equal(t, domain.Record{"id": "i1", "notes": "n", "mode": "online", "interviewers": []any{"u1"}}, out)
	})

	t.Run("Should read the metadata column as a map or JSON text", func(t *testing.T) {
		out, err := metacodec.Merge(domain.Record{"notes": "n", "metadata": map[string]any{"mode": "offline"}})
		require.NoError(t, err)
		assert.Equal(t, domain.Record{"notes": "n", "mode": "offline"}, out)

		out, err = metacodec.Merge(domain.Record{"notes": "n", "metadata": `{"mode":"online"}`})
		require.NoError(t, err)
		assert.Equal(t, "online", out["mode"])
	})

	t.Run("Should keep the record usable when the block is malformed", func(t *testing.T) {
		text := "n\n\n" + metacodec.Sentinel + "\n[oops"
		in := domain.Record{"id": "i1", "notes": text, "mode": "offline"}
		out, err := metacodec.Merge(in)

		var mapErr *apperror.MappingError
		assert.True(t, errors.As(err, &mapErr))
		assert.Equal(t, domain.Record{"id": "i1", "notes": text, "mode": "offline"}, out)
	})

	t.Run("Should not mutate the input record", func(t *testing.T) {
		packed, _ := metacodec.Pack("n", map[string]any{"mode": "online"})
		in := domain.Record{"notes": packed}
		_, _ = metacodec.Merge(in)
		assert.Equal(t, packed, in["notes"])
	})
}
