package store

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Each entity type gets its own prefix so an id alone identifies what it
// names. Tracking codes are a separate, human-shareable namespace.
const trackingPrefix = "VLS"

const (
	base36  = "0123456789abcdefghijklmnopqrstuvwxyz"
	upper36 = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func randString(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

func stampedID(prefix string, randLen int) string {
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return prefix + ms + "_" + randString(base36, randLen)
}

func newUserID() string         { return stampedID("user_", 9) }
func newBookingID() string      { return stampedID("bk_", 6) }
func newQuoteID() string        { return stampedID("q_", 6) }
func newNotificationID() string { return stampedID("notif_", 5) }

// newTrackingCode builds codes like VLS123456AB12CD: the last six digits of
// the millisecond clock plus six random uppercase characters.
func newTrackingCode() string {
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return trackingPrefix + ms[len(ms)-6:] + randString(upper36, 6)
}
