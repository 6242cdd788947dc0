// internal/daily/daily.go
//
// Word of the day for `wordlebot play --daily`.
//
// The index is HMAC-SHA256(salt, YYYY-MM-DD) reduced modulo the number of
// targets, so every player with the same salt and word list gets the same word
// on the same UTC day, and nobody can predict it without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// WordIndex maps a date to an index in [0, n). It returns 0 when n <= 0.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(date)))
	v := binary.BigEndian.Uint64(mac.Sum(nil)[:8])
	return int(v % uint64(n))
}

// Pick returns the word of the day from targets, or "" when there are none.
func Pick(date time.Time, salt string, targets []string) string {
	if len(targets) == 0 {
		return ""
	}
	return targets[WordIndex(date, salt, len(targets))]
}
