package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderProducesPNG(t *testing.T) {
	buf, err := Render([][2]string{
		{"alice", "bob"},
		{"carol", "a much longer display name"},
	})

	require.NoError(t, err)
	data := buf.Bytes()
	require.Greater(t, len(data), len(pngMagic))
	assert.Equal(t, pngMagic, data[:len(pngMagic)])
}

func TestRenderSinglePair(t *testing.T) {
	buf, err := Render([][2]string{{"a", "b"}})

	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestRenderNoPairs(t *testing.T) {
	_, err := Render(nil)
	assert.Error(t, err)
}
