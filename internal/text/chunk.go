package text

import "bytes"

// SplitChunks splits data into chunks of at most size bytes for the
// parallel executor. Boundaries prefer, in order: the last double newline
// within the final size/2 bytes of the window, the last sentence
// terminator (". ") within the final 3*size/4 bytes, the last space in
// the window, then the hard size limit. A chunk never ends in the middle
// of a UTF-8 sequence. If size is 0 or data fits, a single chunk is
// returned.
func SplitChunks(data []byte, size int) [][]byte {
	if size <= 0 || len(data) <= size {
		return [][]byte{data}
	}

	var chunks [][]byte
	for off := 0; off < len(data); {
		rest := data[off:]
		if len(rest) <= size {
			chunks = append(chunks, rest)
			break
		}

		cut := Boundary(rest[:size])
		chunks = append(chunks, rest[:cut])
		off += cut
	}
	return chunks
}

// Boundary returns the cut position for a full window, applying the
// boundary preference order and retreating off multi-byte sequences.
// The streaming producer uses it directly on its read-ahead window.
func Boundary(window []byte) int {
	size := len(window)

	if i := bytes.LastIndex(window[size/2:], []byte("\n\n")); i >= 0 {
		return size/2 + i + 2
	}

	if i := bytes.LastIndex(window[size/4:], []byte(". ")); i >= 0 {
		return size/4 + i + 2
	}

	if i := bytes.LastIndexByte(window, ' '); i >= 0 {
		return i + 1
	}

	// Hard cut: if the window ends inside a multi-byte sequence, retreat
	// to the start of that sequence.
	start := size - 1
	for start > 0 && window[start]&0xC0 == 0x80 {
		start--
	}
	if start > 0 && start+int(leaderLen[window[start]]) > size {
		return start
	}
	return size
}
