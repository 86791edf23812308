package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte("hello"))
	bb.MustWriteByte('!')
	require.Equal(t, []byte("hello!"), bb.Bytes())
	require.Equal(t, 6, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 16)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{1, 2, 3, 4})

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes())
}

func TestByteBufferPool_Reuse(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len())
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	bb := p.Get()
	bb.Grow(1024)
	p.Put(bb) // silently discarded; must not panic

	bb2 := p.Get()
	require.LessOrEqual(t, bb2.Cap(), 1024)
}

func TestDefaultPools(t *testing.T) {
	sb := GetStringBuffer()
	sb.MustWriteByte('x')
	PutStringBuffer(sb)

	pb := GetPayloadBuffer()
	pb.MustWrite([]byte("payload"))
	PutPayloadBuffer(pb)
}
