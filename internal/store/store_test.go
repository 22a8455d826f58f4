package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/logger"
)

func TestSnapshotWriterLandsLatestSnapshot(t *testing.T) {
	mem := kv.NewMemory()
	w := newSnapshotWriter(mem, "test", logger.Discard().Logger)

	for i := range 100 {
		w.write(fmt.Appendf(nil, `{"n":%d}`, i))
	}
	w.flush()

	data, err := mem.Load("test")
	require.NoError(t, err)
	assert.Equal(t, `{"n":99}`, string(data))
}

func TestRehydrateAbsentKeyLeavesDestUntouched(t *testing.T) {
	mem := kv.NewMemory()
	dest := struct {
		N int `json:"n"`
	}{N: 7}

	rehydrate(mem, "missing", &dest, logger.Discard().Logger)

	assert.Equal(t, 7, dest.N)
}

func TestRehydrateDecodesSnapshot(t *testing.T) {
	mem := kv.NewMemory()
	mem.Put("test", []byte(`{"n":42}`))
	var dest struct {
		N int `json:"n"`
	}

	rehydrate(mem, "test", &dest, logger.Discard().Logger)

	assert.Equal(t, 42, dest.N)
}

func TestRehydrateCorruptPayloadIsNotFatal(t *testing.T) {
	mem := kv.NewMemory()
	mem.Put("test", []byte("{broken"))
	var dest struct {
		N int `json:"n"`
	}

	rehydrate(mem, "test", &dest, logger.Discard().Logger)

	assert.Equal(t, 0, dest.N)
}

func TestRehydratePartiallyValidPayloadLeavesDestUntouched(t *testing.T) {
	mem := kv.NewMemory()
	// First field decodes fine, second fails; nothing may stick.
	mem.Put("test", []byte(`{"n":42,"label":13}`))
	var dest struct {
		N     int    `json:"n"`
		Label string `json:"label"`
	}

	rehydrate(mem, "test", &dest, logger.Discard().Logger)

	assert.Equal(t, 0, dest.N)
	assert.Empty(t, dest.Label)
}
