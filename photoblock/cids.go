// Package photoblock is the on-chain gallery surface: reading the CID list
// and username a contract stores per account, with the read-through cache
// and the availability prober wired in front of the RPC.
package photoblock

import (
	"strings"
)

// NormalizeCIDs trims every identifier, drops blanks, and deduplicates by
// exact string equality. It returns the unique identifiers in first-seen
// order together with how many times each appeared, so the UI can badge
// duplicates instead of rendering the same image twice.
func NormalizeCIDs(raw []string) (unique []string, counts map[string]int) {
	counts = map[string]int{}
	unique = []string{}
	for _, cidStr := range raw {
		cidStr = strings.TrimSpace(cidStr)
		if cidStr == "" {
			continue
		}
		if counts[cidStr] == 0 {
			unique = append(unique, cidStr)
		}
		counts[cidStr]++
	}
	return unique, counts
}
