// Package version checks GitHub for newer reqview releases.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// releaseURL is a var so tests can point it at a local server.
var releaseURL = "https://api.github.com/repos/studiowebux/reqview/releases/latest"

const checkTimeout = 5 * time.Second

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckForUpdate fetches the latest release tag and compares it against the
// running version. Network failures are returned to the caller, which treats
// the check as best-effort.
func CheckForUpdate(current string) (available bool, latest string, url string, err error) {
	client := &http.Client{Timeout: checkTimeout}

	req, err := http.NewRequest(http.MethodGet, releaseURL, nil)
	if err != nil {
		return false, "", "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "reqview/"+current)

	resp, err := client.Do(req)
	if err != nil {
		return false, "", "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "", "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return false, "", "", fmt.Errorf("failed to decode release: %w", err)
	}

	latest = strings.TrimPrefix(rel.TagName, "v")
	current = strings.TrimPrefix(current, "v")

	if latest != "" && compareVersions(latest, current) > 0 {
		return true, latest, rel.HTMLURL, nil
	}
	return false, latest, rel.HTMLURL, nil
}

// compareVersions compares dotted numeric versions, ignoring pre-release and
// build suffixes. Returns >0 when a is newer than b, <0 when older, 0 when
// the numeric parts are equal.
func compareVersions(a, b string) int {
	ap := versionParts(a)
	bp := versionParts(b)

	n := len(ap)
	if len(bp) > n {
		n = len(bp)
	}

	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(ap) {
			av = ap[i]
		}
		if i < len(bp) {
			bv = bp[i]
		}
		if av != bv {
			return av - bv
		}
	}
	return 0
}

func versionParts(v string) []int {
	// Strip pre-release and build metadata: "0.2.1-dev+build" -> "0.2.1"
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}

	var parts []int
	for _, p := range strings.Split(v, ".") {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		parts = append(parts, n)
	}
	return parts
}
