package stats

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/udisondev/eurekalink/internal/data"
)

// Report renders the statistics as plain text in the given locale.
// Unknown tags fall back to English.
func (a *Aggregator) Report(tag language.Tag) string {
	a.mu.Lock()
	doc := a.doc.Clone()
	a.mu.Unlock()

	p := message.NewPrinter(tag)
	var b strings.Builder

	kinds := make(map[uint32]int, len(data.CofferKinds))
	total := 0
	for _, byKind := range doc.Stats {
		for kind, n := range byKind {
			kinds[kind] += n
			total += n
		}
	}

	killed := 0
	for _, n := range doc.Episodes {
		killed += n
	}

	b.WriteString("Total Stats:\n")
	b.WriteString(p.Sprintf("  Killed Bunnies: %d\n", killed))
	if doc.PendingKills > 0 {
		b.WriteString(p.Sprintf("  Unresolved: %d\n", doc.PendingKills))
	}
	b.WriteString(p.Sprintf("  Coffers Found: %d\n", total))
	writeKinds(&b, p, kinds, total)

	territories := make([]uint16, 0, len(doc.Stats))
	for territory := range doc.Stats {
		territories = append(territories, territory)
	}
	slices.Sort(territories)

	if len(territories) > 0 {
		b.WriteString("Map Stats:\n")
	}
	for _, territory := range territories {
		byKind := doc.Stats[territory]
		b.WriteString(p.Sprintf("  %s (%d episodes):\n", data.PlaceName(territory), doc.Episodes[territory]))
		writeKinds(&b, p, byKind, sumKinds(byKind))
	}
	return b.String()
}

// writeKinds writes one line per coffer kind, worst first.
func writeKinds(b *strings.Builder, p *message.Printer, kinds map[uint32]int, total int) {
	for i := len(data.CofferKinds) - 1; i >= 0; i-- {
		kind := data.CofferKinds[i]
		n := kinds[kind]
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		b.WriteString(p.Sprintf("    %s: %d (%.2f%%)\n", data.CofferName(kind), n, pct))
	}
}
