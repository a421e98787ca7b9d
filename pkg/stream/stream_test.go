package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterNeverShortWrites(t *testing.T) {
	w := NewWriter()
	n := w.Write([]byte("hello"))
	require.Equal(t, 5, n)
	n = w.Write([]byte(" world"))
	require.Equal(t, 6, n)
	assert.Equal(t, "hello world", string(w.Bytes()))
}

func TestReaderReportsEOFOnExhaustion(t *testing.T) {
	r := NewReader([]byte("abc"))
	buf := make([]byte, 10)
	n, eof := r.Read(buf)
	require.False(t, eof)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(buf[:n]))

	n, eof = r.Read(buf)
	assert.Equal(t, 0, n)
	assert.True(t, eof)
}

func TestChunkedReaderCapsEachRead(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	r := NewChunkedReader(data, DefaultChunkSize)
	buf := make([]byte, 100)

	var got []byte
	for {
		n, eof := r.Read(buf)
		if eof {
			break
		}
		require.LessOrEqual(t, n, DefaultChunkSize)
		got = append(got, buf[:n]...)
	}
	assert.Equal(t, data, got)
}

func TestEmptyReaderIsImmediatelyExhausted(t *testing.T) {
	r := EmptyReader{}
	n, eof := r.Read(make([]byte, 4))
	assert.Equal(t, 0, n)
	assert.True(t, eof)
}
