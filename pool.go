package fletch

import (
	"bytes"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	// Oversized buffers are dropped so one huge body doesn't pin memory.
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}
