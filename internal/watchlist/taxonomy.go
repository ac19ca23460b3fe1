package watchlist

// Ungrouped is the synthetic category for keywords without one.
const Ungrouped = "Ungrouped"

// unknownRank sorts categories outside the taxonomy after every known one.
const unknownRank = 999

// Taxonomy is the fixed display order for keyword categories. Groups render
// in this sequence, Ungrouped last among known names, with anything the
// server invents sorting after the whole list.
var Taxonomy = []string{
	"APT Group",
	"Nation State",
	"Threat Actor",
	"Ransomware",
	"Malware Family",
	"Botnet",
	"Infostealer",
	"Exploit",
	"Vulnerability",
	"Zero Day",
	"Phishing",
	"Supply Chain",
	"Data Breach",
	"DDoS",
	"Dark Web",
	"Insider Threat",
	"Critical Infrastructure",
	"Hacktivism",
	"Cryptocurrency",
	"Mobile Threat",
	Ungrouped,
}

var taxonomyRank = buildTaxonomyRank()

func buildTaxonomyRank() map[string]int {
	ranks := make(map[string]int, len(Taxonomy))
	for i, name := range Taxonomy {
		ranks[name] = i
	}
	return ranks
}

// CategoryRank returns the display rank of a category. Known names rank by
// taxonomy position; unknown names all share the trailing sentinel rank.
func CategoryRank(name string) int {
	if rank, ok := taxonomyRank[name]; ok {
		return rank
	}
	return unknownRank
}

// KnownCategory reports whether name appears in the fixed taxonomy.
func KnownCategory(name string) bool {
	_, ok := taxonomyRank[name]
	return ok
}
