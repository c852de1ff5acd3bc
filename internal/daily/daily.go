package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using
// HMAC(salt, YYYY-MM-DD) % wordsLen. Same date and salt always map to the
// same word, so runs on one day are comparable.
func WordIndex(date time.Time, salt string, wordsLen int) int {
	if wordsLen <= 0 {
		return 0
	}
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(wordsLen))
}

// Secret picks the secret-of-the-day from words.
func Secret(date time.Time, salt string, words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[WordIndex(date, salt, len(words))]
}
