package zstdcodec

import "encoding/binary"

const (
	frameMagic         = 0xFD2FB528
	skippableMagicMask = 0xFFFFFFF0
	skippableMagic     = 0x184D2A50

	blockRLE      = 1
	blockReserved = 3
)

type walkState uint8

const (
	stateMagic         walkState = iota // 4-byte magic number
	stateSkippableSize                  // 4-byte skippable frame length
	stateDescriptor                     // frame header descriptor
	stateBlockHeader                    // 3-byte block header
)

var dictIDSize = [4]int64{0, 1, 2, 4}

// frameWalker follows the frame and block layout of a zstd stream (RFC
// 8878) without decoding it. It only needs headers and lengths, so
// payloads are skipped as they pass.
type frameWalker struct {
	state   walkState
	buf     [4]byte
	have    int
	need    int
	skip    int64
	invalid bool

	checksum bool
}

func newFrameWalker() *frameWalker {
	return &frameWalker{state: stateMagic, need: 4}
}

// Write consumes the next bytes of the compressed stream. It never fails.
func (w *frameWalker) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 && !w.invalid {
		if w.skip > 0 {
			k := min(int64(len(p)), w.skip)
			w.skip -= k
			p = p[k:]
			continue
		}
		c := copy(w.buf[w.have:w.need], p)
		w.have += c
		p = p[c:]
		if w.have == w.need {
			w.have = 0
			w.step()
		}
	}
	return n, nil
}

// complete reports whether the bytes seen so far end on a frame boundary.
// An empty stream counts as complete.
func (w *frameWalker) complete() bool {
	return !w.invalid && w.state == stateMagic && w.have == 0 && w.skip == 0
}

func (w *frameWalker) step() {
	switch w.state {
	case stateMagic:
		magic := binary.LittleEndian.Uint32(w.buf[:4])
		switch {
		case magic == frameMagic:
			w.expect(stateDescriptor, 1, 0)
		case magic&skippableMagicMask == skippableMagic:
			w.expect(stateSkippableSize, 4, 0)
		default:
			w.invalid = true
		}

	case stateSkippableSize:
		w.expect(stateMagic, 4, int64(binary.LittleEndian.Uint32(w.buf[:4])))

	case stateDescriptor:
		d := w.buf[0]
		singleSegment := d&0x20 != 0
		w.checksum = d&0x04 != 0

		var header int64
		if !singleSegment {
			header++ // window descriptor
		}
		header += dictIDSize[d&0x03]
		switch d >> 6 {
		case 0:
			if singleSegment {
				header++
			}
		case 1:
			header += 2
		case 2:
			header += 4
		case 3:
			header += 8
		}
		w.expect(stateBlockHeader, 3, header)

	case stateBlockHeader:
		h := uint32(w.buf[0]) | uint32(w.buf[1])<<8 | uint32(w.buf[2])<<16
		last := h&1 != 0
		blockType := (h >> 1) & 0x03
		size := int64(h >> 3)

		switch blockType {
		case blockReserved:
			w.invalid = true
			return
		case blockRLE:
			size = 1
		}
		if !last {
			w.expect(stateBlockHeader, 3, size)
			return
		}
		if w.checksum {
			size += 4
		}
		w.expect(stateMagic, 4, size)
	}
}

// expect skips skip bytes, then collects need bytes for state.
func (w *frameWalker) expect(state walkState, need int, skip int64) {
	w.state = state
	w.need = need
	w.skip = skip
}
