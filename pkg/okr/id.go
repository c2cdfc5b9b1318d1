package okr

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID makes an `okr_<millis>_<suffix>` identifier. The format is
// shared by objectives, history entries, and backups; uniqueness comes
// from the timestamp plus a 9-character random suffix.
func GenerateID() string {
	var b strings.Builder
	b.WriteString("okr_")
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	b.WriteByte('_')
	for i := 0; i < 9; i++ {
		b.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return b.String()
}
