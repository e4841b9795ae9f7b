package ingest

import "strings"

// Defaults for the word-window splitter. Legal articles are long and
// self-referential, so windows overlap to keep cross-references intact
// at chunk boundaries.
const (
	DefaultChunkWords   = 400
	DefaultOverlapWords = 50
)

// SplitWords divides text into overlapping word windows. Window and
// overlap are counted in whitespace-separated words; overlap is clamped
// below window so the splitter always advances.
func SplitWords(text string, window, overlap int) []string {
	if window <= 0 {
		window = DefaultChunkWords
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= window {
		overlap = window / 2
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= window {
		return []string{strings.Join(words, " ")}
	}

	step := window - overlap
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + window
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
