package memory

// Rewind positions the block cursor on the first block of the data range.
func (b *Buffer) Rewind() {
	var start int
	if b.role == Output {
		start = b.findBlockStart(b.dataRange.Start - 1)
	} else {
		start = b.dataRange.Start
	}
	b.setBlock(start)
}

// Next advances the cursor past the current block.
func (b *Buffer) Next() {
	if !b.blockRange.Valid() {
		return
	}
	b.setBlock(b.findBlockStart(b.blockRange.End))
}

// HasBlock reports whether the cursor points at a block inside the data range.
func (b *Buffer) HasBlock() bool {
	return b.blockRange.Valid() && b.dataRange.ContainsRange(b.blockRange)
}

// Block returns a copy of the bytes under the cursor.
func (b *Buffer) Block() []byte {
	if !b.HasBlock() {
		return nil
	}
	out := make([]byte, b.blockRange.Length())
	copy(out, b.data[b.blockRange.Start:b.blockRange.End+1])
	return out
}

// PutBlock stores p at the cursor and marks the bytes valid. p is truncated
// to the block length.
func (b *Buffer) PutBlock(p []byte) {
	if !b.HasBlock() {
		return
	}
	n := b.blockRange.Length()
	if len(p) < n {
		n = len(p)
	}
	for i := 0; i < n; i++ {
		b.PutData(b.blockRange.Start+i, p[i])
	}
}

// BlockLength returns the size of the current block.
func (b *Buffer) BlockLength() int { return b.blockRange.Length() }

// BlockPage returns the 64 KiB page of the current block.
func (b *Buffer) BlockPage() int { return b.blockRange.StartPage() }

// BlockOffset returns the distance of the cursor from the data start.
func (b *Buffer) BlockOffset() int { return b.blockRange.Start - b.dataRange.Start }

func (b *Buffer) setBlock(start int) {
	if start < 0 {
		b.blockRange = EmptyRange()
		return
	}
	b.blockRange = NewRange(start, b.findBlockEnd(start))
}

// findBlockStart returns the first address after prev where a block may
// begin, or -1 when none is left.
func (b *Buffer) findBlockStart(prev int) int {
	if !b.dataRange.Valid() {
		return -1
	}
	if b.role == Input {
		if prev+1 > b.dataRange.End {
			return -1
		}
		return prev + 1
	}
	a := prev + 1
	if a < b.dataRange.Start {
		a = b.dataRange.Start
	}
	for ; a <= b.dataRange.End; a++ {
		if b.valid[a] {
			return a
		}
	}
	return -1
}

func (b *Buffer) findBlockEnd(start int) int {
	pageEnd := start | (PageSize - 1)
	if b.role == Input {
		end := start + MaxTransferSize - 1
		if end > pageEnd {
			end = pageEnd
		}
		if end > b.dataRange.End {
			end = b.dataRange.End
		}
		return end
	}
	end := start
	for end+1 <= b.dataRange.End && end+1 <= pageEnd &&
		end+1-start < MaxTransferSize && b.valid[end+1] {
		end++
	}
	return end
}
