package initmsg

import (
	"bytes"
	"io"
	"testing"

	"github.com/multiformats/go-varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-featurebits/internal/core/bitvector"
	"github.com/dep2p/go-featurebits/internal/core/capability"
)

// TestMessage_MarshalBinary 测试帧内容编码
func TestMessage_MarshalBinary(t *testing.T) {
	msg := Message{
		Global: capability.RenderGlobal(),
		Local:  capability.RenderLocal(),
	}
	data, err := msg.MarshalBinary()
	require.NoError(t, err)

	want := []byte{
		0x00, 0x10, // type
		0x00, 0x02, 0x02, 0x00, // global
		0x00, 0x01, 0xaa, // local
	}
	assert.Equal(t, want, data)
}

// TestMessage_UnmarshalBinary 测试帧内容解码
func TestMessage_UnmarshalBinary(t *testing.T) {
	t.Run("Empty vectors", func(t *testing.T) {
		var msg Message
		require.NoError(t, msg.UnmarshalBinary([]byte{0x00, 0x10, 0x00, 0x00, 0x00, 0x00}))
		assert.True(t, msg.Global.IsZero())
		assert.True(t, msg.Local.IsZero())
	})

	t.Run("Trailing extension ignored", func(t *testing.T) {
		var msg Message
		data := []byte{0x00, 0x10, 0x00, 0x01, 0x02, 0x00, 0x01, 0x01, 0xde, 0xad}
		require.NoError(t, msg.UnmarshalBinary(data))
		assert.Equal(t, bitvector.Vector{0x02}, msg.Global)
		assert.Equal(t, bitvector.Vector{0x01}, msg.Local)

		// 解码结果不共享输入
		data[4] = 0xff
		assert.Equal(t, bitvector.Vector{0x02}, msg.Global)
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			name string
			data []byte
			want error
		}{
			{"no type", []byte{0x00}, ErrTruncated},
			{"wrong type", []byte{0x00, 0x11, 0x00, 0x00, 0x00, 0x00}, ErrUnexpectedType},
			{"no global length", []byte{0x00, 0x10, 0x00}, ErrTruncated},
			{"short global", []byte{0x00, 0x10, 0x00, 0x03, 0x01}, ErrTruncated},
			{"no local length", []byte{0x00, 0x10, 0x00, 0x00}, ErrTruncated},
			{"short local", []byte{0x00, 0x10, 0x00, 0x00, 0x00, 0x02, 0x01}, ErrTruncated},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var msg Message
				assert.ErrorIs(t, msg.UnmarshalBinary(tt.data), tt.want)
			})
		}
	})
}

// TestMessage_VectorTooLong 测试超长向量
func TestMessage_VectorTooLong(t *testing.T) {
	_, err := Message{Local: make(bitvector.Vector, MaxVectorLen+1)}.MarshalBinary()
	assert.ErrorIs(t, err, ErrVectorTooLong)

	err = Write(io.Discard, Message{Global: make(bitvector.Vector, MaxVectorLen+1)})
	assert.ErrorIs(t, err, ErrVectorTooLong)
}

// TestWriteRead 测试帧读写
func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	first := Message{Global: bitvector.New(9), Local: bitvector.New(1, 3, 5, 7)}
	second := Message{Local: bitvector.New(200)}

	require.NoError(t, Write(&buf, first))
	require.NoError(t, Write(&buf, second))

	got, err := Read(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, first.Global, got.Global)
	assert.Equal(t, first.Local, got.Local)

	got, err = Read(&buf, 0)
	require.NoError(t, err)
	assert.True(t, got.Global.IsZero())
	assert.True(t, got.Local.IsSet(200))

	_, err = Read(&buf, 0)
	assert.Equal(t, io.EOF, err)

	t.Log("✅ init 帧读写测试通过")
}

// onlyReader 隐藏 io.ByteReader 实现
type onlyReader struct{ r io.Reader }

func (o onlyReader) Read(p []byte) (int, error) { return o.r.Read(p) }

// TestRead_DoesNotOverRead 测试读取不越过帧边界
func TestRead_DoesNotOverRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Message{Local: bitvector.New(1)}))
	buf.WriteString("next")

	r := onlyReader{&buf}
	_, err := Read(r, 0)
	require.NoError(t, err)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "next", string(rest))
}

// TestRead_Errors 测试帧读取错误
func TestRead_Errors(t *testing.T) {
	t.Run("FrameTooLarge", func(t *testing.T) {
		frame := varint.ToUvarint(100)
		_, err := Read(bytes.NewReader(frame), 10)
		assert.ErrorIs(t, err, ErrFrameTooLarge)
	})

	t.Run("TruncatedLength", func(t *testing.T) {
		_, err := Read(bytes.NewReader([]byte{0x80}), 0)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("TruncatedBody", func(t *testing.T) {
		frame := append(varint.ToUvarint(6), 0x00, 0x10)
		_, err := Read(bytes.NewReader(frame), 0)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("BadType", func(t *testing.T) {
		frame := append(varint.ToUvarint(6), 0x00, 0x01, 0x00, 0x00, 0x00, 0x00)
		_, err := Read(bytes.NewReader(frame), 0)
		assert.ErrorIs(t, err, ErrUnexpectedType)
	})
}
