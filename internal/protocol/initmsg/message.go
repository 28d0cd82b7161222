// Package initmsg 实现承载特性向量的 init 消息编解码
package initmsg

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/multiformats/go-varint"

	"github.com/dep2p/go-featurebits/internal/core/bitvector"
)

// ============================================================================
//                              常量
// ============================================================================

// TypeInit init 消息类型
const TypeInit uint16 = 16

// MaxVectorLen 单个特性向量的最大字节数
const MaxVectorLen = 1<<16 - 1

// headerLen 类型与两个长度字段
const headerLen = 6

// MinFrameLen 最小帧长度（两个空向量）
const MinFrameLen = headerLen

// MaxFrameLen 协议允许的最大帧长度
const MaxFrameLen = headerLen + 2*MaxVectorLen

// DefaultMaxFrame 默认接收帧上限
const DefaultMaxFrame = 64 * 1024

// ============================================================================
//                              消息
// ============================================================================

// Message init 消息
//
// 线格式（帧内容，大端序）:
//
//	u16 type (=16) | u16 gflen | gflen 字节 | u16 lflen | lflen 字节 | 扩展...
//
// 帧前缀为 unsigned varint 编码的帧内容长度。帧尾部的扩展字节被忽略。
type Message struct {
	// Global 全网级特性向量
	Global bitvector.Vector

	// Local 连接级特性向量
	Local bitvector.Vector
}

// MarshalBinary 编码帧内容（不含长度前缀）
func (m Message) MarshalBinary() ([]byte, error) {
	if len(m.Global) > MaxVectorLen {
		return nil, fmt.Errorf("%w: global %d bytes", ErrVectorTooLong, len(m.Global))
	}
	if len(m.Local) > MaxVectorLen {
		return nil, fmt.Errorf("%w: local %d bytes", ErrVectorTooLong, len(m.Local))
	}

	buf := make([]byte, 0, headerLen+len(m.Global)+len(m.Local))
	buf = binary.BigEndian.AppendUint16(buf, TypeInit)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(m.Global)))
	buf = append(buf, m.Global...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(m.Local)))
	buf = append(buf, m.Local...)
	return buf, nil
}

// UnmarshalBinary 解码帧内容（不含长度前缀）
//
// 向量内容被复制，不与 data 共享底层数组。
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("%w: missing type", ErrTruncated)
	}
	if typ := binary.BigEndian.Uint16(data); typ != TypeInit {
		return fmt.Errorf("%w: %d", ErrUnexpectedType, typ)
	}
	rest := data[2:]

	global, rest, err := readVector(rest, "global")
	if err != nil {
		return err
	}
	local, _, err := readVector(rest, "local")
	if err != nil {
		return err
	}

	m.Global = global
	m.Local = local
	return nil
}

func readVector(data []byte, name string) (bitvector.Vector, []byte, error) {
	if len(data) < 2 {
		return nil, nil, fmt.Errorf("%w: missing %s length", ErrTruncated, name)
	}
	n := int(binary.BigEndian.Uint16(data))
	data = data[2:]
	if len(data) < n {
		return nil, nil, fmt.Errorf("%w: %s wants %d bytes, have %d", ErrTruncated, name, n, len(data))
	}
	return bitvector.FromBytes(data[:n]), data[n:], nil
}

// ============================================================================
//                              帧读写
// ============================================================================

// Write 写入一个带长度前缀的 init 消息
func Write(w io.Writer, msg Message) error {
	body, err := msg.MarshalBinary()
	if err != nil {
		return err
	}

	frame := make([]byte, 0, varint.UvarintSize(uint64(len(body)))+len(body))
	frame = append(frame, varint.ToUvarint(uint64(len(body)))...)
	frame = append(frame, body...)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("initmsg: write frame: %w", err)
	}
	return nil
}

// Read 读取一个带长度前缀的 init 消息
//
// maxFrame 为帧内容上限，<= 0 时使用 DefaultMaxFrame。
// 只读取帧本身的字节，不会预读后续数据。
func Read(r io.Reader, maxFrame int) (Message, error) {
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}

	length, err := varint.ReadUvarint(asByteReader(r))
	if err != nil {
		if err == io.EOF {
			return Message{}, err
		}
		return Message{}, fmt.Errorf("initmsg: read frame length: %w", err)
	}
	if length > uint64(maxFrame) {
		return Message{}, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, length, maxFrame)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return Message{}, fmt.Errorf("initmsg: read frame body: %w", err)
	}

	var msg Message
	if err := msg.UnmarshalBinary(body); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// byteReader 逐字节读取，避免缓冲吞掉帧之后的数据
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (b *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.buf[:]); err != nil {
		return 0, err
	}
	return b.buf[0], nil
}

func asByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &byteReader{r: r}
}
