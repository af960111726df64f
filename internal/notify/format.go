package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/udisondev/eurekalink/internal/clock"
	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
)

// FlagToken is what $p expands to: the chat placeholder for the map flag.
const FlagToken = "<flag>"

// Pull time bounds, minutes.
const (
	MinPullMinutes = 1
	MaxPullMinutes = 30
)

// ClampPull bounds a pull time to [MinPullMinutes, MaxPullMinutes].
func ClampPull(minutes int) int {
	return max(MinPullMinutes, min(minutes, MaxPullMinutes))
}

// FormatShout expands the chat template for fate.
//
// Tokens: $n name, $sN short name, $t pull time, $p map flag. Anything else,
// including unknown $-tokens, is kept verbatim.
func (s Settings) FormatShout(fate data.Fate, now time.Time) string {
	t := ""
	if s.ShowPullTimer {
		if s.UseEorzeaTime {
			t = "ET " + clock.FormatEorzea(clock.PullMinutes(now), s.TwelveHour)
		} else {
			t = fmt.Sprintf("PT %d", ClampPull(s.PullMinutes))
		}
	}

	r := strings.NewReplacer(
		"$sN", fate.ShortName,
		"$n", fate.Name,
		"$t", t,
		"$p", FlagToken,
	)
	return r.Replace(s.ChatFormat)
}

// FormatPop renders the personal pop line: "<name> pop: (x, y)".
func (s Settings) FormatPop(fate data.Fate) string {
	return fate.DisplayName(s.UseShortNames) + " pop: " + fate.MapLink()
}

// FormatFairy renders the personal fairy sighting line.
func FormatFairy(fairy data.Fairy) string {
	return "Fairy: " + fairy.MapLink()
}

// FormatNewLocation renders the report line for a coffer found at an
// unregistered position.
func FormatNewLocation(territory uint16, pos model.Location) string {
	return fmt.Sprintf("Terri: %d Pos: %.6ff, %gf, %gf", territory, pos.X, pos.Y, pos.Z)
}

// FormatFound renders the personal line for a credited coffer.
func FormatFound(territory uint16, kind uint32) string {
	return fmt.Sprintf("%s coffer found in %s", data.CofferName(kind), data.PlaceName(territory))
}
