package resolver

import (
	"regexp"
	"strings"

	"vgshop/listingresolver/pkg/errors"
)

// Steam app ids are embedded in store URLs or the steam:// scheme
var (
	steamStorePattern = regexp.MustCompile(`store\.steampowered\.com/app/(\d+)`)
	steamRunPattern   = regexp.MustCompile(`steam://rungame/(\d+)`)
)

// PlayStation product code patterns, ordered most to least specific.
// Codes are case-insensitive and look like EP9000-PPSA01284_00, with a
// 2-6 char base, 4-9 char SKU and a two-digit suffix.
var (
	psnProductPathPattern = regexp.MustCompile(`(?i)/product/([a-z0-9]+-[a-z0-9]+_\d{2}(?:-[a-z0-9-]+)?)`)
	psnLegacyTIDPattern   = regexp.MustCompile(`(?i)tid=([a-z0-9]+_\d{2})`)
	psnBareDashedPattern  = regexp.MustCompile(`(?i)^([a-z0-9]{2,6}-[a-z0-9]{4,9}_\d{2}(?:-[a-z0-9-]+)?)$`)
	psnBareNoDashPattern  = regexp.MustCompile(`(?i)^([a-z0-9]{2,6})([a-z0-9]{4,9})_(\d{2})$`)

	// Permissive last resort: any bare token carrying the _NN suffix marker
	// is still treated as a verbatim product id. Known over-matching risk,
	// kept on purpose.
	psnRawIDPattern = regexp.MustCompile(`(?i)^[a-z0-9][a-z0-9-]*_\d{2}[a-z0-9-]*$`)
)

// psnMatcher attempts to extract a product id from the input.
// Returns "" when the input does not match this shape.
type psnMatcher func(input string) string

// psnMatchers is the ordered matcher chain; the first non-empty match wins
var psnMatchers = []psnMatcher{
	matchPSNProductPath,
	matchPSNLegacyTID,
	matchPSNBareDashed,
	matchPSNBareNoDash,
}

func matchPSNProductPath(input string) string {
	if m := psnProductPathPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return ""
}

func matchPSNLegacyTID(input string) string {
	if m := psnLegacyTIDPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return ""
}

func matchPSNBareDashed(input string) string {
	if m := psnBareDashedPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return ""
}

// matchPSNBareNoDash reconstructs the dashed form of a product code whose
// base and SKU run together, e.g. EP9000PPSA01284_00 -> EP9000-PPSA01284_00
func matchPSNBareNoDash(input string) string {
	if m := psnBareNoDashPattern.FindStringSubmatch(input); m != nil {
		return m[1] + "-" + m[2] + "_" + m[3]
	}
	return ""
}

// IsSteamInput reports whether the raw input is Steam-shaped
func IsSteamInput(input string) bool {
	return strings.Contains(input, "store.steampowered.com") ||
		strings.Contains(input, "steam://")
}

// HasPSNDomain reports whether the raw input carries a PlayStation store marker
func HasPSNDomain(input string) bool {
	return strings.Contains(input, "playstation.com") ||
		strings.Contains(strings.ToLower(input), "tid=")
}

// ExtractSteamAppID extracts the numeric app id from a Steam-shaped input
func ExtractSteamAppID(input string) (string, bool) {
	if m := steamStorePattern.FindStringSubmatch(input); m != nil {
		return m[1], true
	}
	if m := steamRunPattern.FindStringSubmatch(input); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractPSNProductID runs the ordered matcher chain over the input
func ExtractPSNProductID(input string) (string, bool) {
	for _, match := range psnMatchers {
		if id := match(input); id != "" {
			return id, true
		}
	}
	return "", false
}

// ExtractIdentifier classifies the raw input and extracts its canonical
// platform identifier.
func ExtractIdentifier(rawInput string) (PlatformIdentifier, error) {
	input := strings.TrimSpace(rawInput)

	if IsSteamInput(input) {
		appID, ok := ExtractSteamAppID(input)
		if !ok {
			return PlatformIdentifier{}, errors.NewIdentifierNotFound(string(PlatformSteam),
				"no app id found in Steam URL")
		}
		return PlatformIdentifier{Platform: PlatformSteam, ID: appID}, nil
	}

	if HasPSNDomain(input) {
		id, ok := ExtractPSNProductID(input)
		if !ok {
			return PlatformIdentifier{}, errors.NewIdentifierNotFound(string(PlatformPSN),
				"no product id found in PlayStation URL")
		}
		return PlatformIdentifier{Platform: PlatformPSN, ID: id}, nil
	}

	// Bare input: try the recognized code shapes first, then fall back to
	// treating the whole input as a raw product id when it at least carries
	// the _NN suffix marker.
	if id, ok := ExtractPSNProductID(input); ok {
		return PlatformIdentifier{Platform: PlatformPSN, ID: id}, nil
	}
	if psnRawIDPattern.MatchString(input) {
		return PlatformIdentifier{Platform: PlatformPSN, ID: input}, nil
	}

	return PlatformIdentifier{}, errors.NewUnsupportedStore(
		"input matches neither Steam nor PlayStation store")
}
