package util

import "sync"

// RowBufSize is the starting capacity of a scratch buffer: large
// enough for a data row of three doubles in 'g' format.
const RowBufSize = 128

// RowBufPool provides reusable byte buffers for formatting numeric
// data rows, keeping the materialiser's inner loop allocation-free.
var RowBufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, RowBufSize)
		return &buf
	},
}

// GetBuf retrieves a buffer from the pool.  Callers must return it
// with [PutBuf] when finished.
func GetBuf() *[]byte {
	return RowBufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	*buf = (*buf)[:0]
	RowBufPool.Put(buf)
}
