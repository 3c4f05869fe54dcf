package discovery

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutsideRunWindow is returned by RunWindow.Check outside the window
var ErrOutsideRunWindow = errors.New("outside recommended run window")

// RunWindow is a local-hour range [StartHour, EndHour). A start after the
// end wraps past midnight; equal bounds cover the whole day.
type RunWindow struct {
	StartHour int
	EndHour   int
}

func (w RunWindow) Contains(t time.Time) bool {
	h := t.Hour()
	switch {
	case w.StartHour == w.EndHour:
		return true
	case w.StartHour < w.EndHour:
		return h >= w.StartHour && h < w.EndHour
	default:
		return h >= w.StartHour || h < w.EndHour
	}
}

func (w RunWindow) Check(t time.Time) error {
	if w.Contains(t) {
		return nil
	}
	return fmt.Errorf("%w: %02d:%02d is not within %02d:00-%02d:00",
		ErrOutsideRunWindow, t.Hour(), t.Minute(), w.StartHour, w.EndHour)
}

// IsLateNight reports 20:00-05:00, when same-day schedule endpoints return
// little or nothing
func IsLateNight(t time.Time) bool {
	h := t.Hour()
	return h >= 20 || h < 5
}

var kst = loadKST()

func loadKST() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*60*60)
}

// ServiceDate formats t as the provider's YYYYMMDD date in Korean time
func ServiceDate(t time.Time) string {
	return t.In(kst).Format("20060102")
}

// InServiceZone converts t to Korean time
func InServiceZone(t time.Time) time.Time {
	return t.In(kst)
}
