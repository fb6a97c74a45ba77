package replay

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin.gz")

	rec, err := NewRecorder(path)
	require.NoError(t, err)

	messages := [][]byte{
		{0x01, 0x02, 0x03, 0x00},
		{0xFF},
		make([]byte, 5000), // крупное сообщение (колонка чанков)
	}
	for _, msg := range messages {
		require.NoError(t, rec.Record(msg))
	}
	require.NoError(t, rec.Close())

	// Повторное закрытие безопасно, запись после закрытия отвергается
	require.NoError(t, rec.Close())
	require.Error(t, rec.Record([]byte{1}))

	frames, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, frames, len(messages))

	var previous int64 = -1
	for i, frame := range frames {
		assert.Equal(t, messages[i], frame.Message, "кадр %d", i)
		assert.GreaterOrEqual(t, int64(frame.Offset), previous, "смещения должны не убывать")
		previous = int64(frame.Offset)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	_, err := ReadAll(filepath.Join(t.TempDir(), "нет-такого-файла"))
	require.Error(t, err)
}
