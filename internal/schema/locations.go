package schema

// canonicalNames maps provider location ids to canonical display names.
// Caller-supplied spellings may carry transliteration or half-repaired
// encoding artifacts, so a recognized id always wins over them.
var canonicalNames = map[string]string{
	"101010100": "北京",
	"101020100": "上海",
	"101280101": "广州",
	"101280601": "深圳",
	"101210101": "杭州",
}

// CanonicalCityName resolves a location id to its display name, falling back
// to the caller-supplied string for unrecognized ids.
func CanonicalCityName(locationID, fallback string) string {
	if name, ok := canonicalNames[locationID]; ok {
		return name
	}
	return fallback
}
