package fetcher

import (
	"net/url"
	"regexp"
	"strings"
)

var slashRun = regexp.MustCompile(`/{2,}`)

// ResolveLocation resolves a redirect Location header against the URL of the
// hop that returned it.
//
// Absolute locations are returned verbatim. Locations starting with "/" are
// joined to the current scheme and host. Anything else is appended to the
// current path's directory, with runs of slashes collapsed.
func ResolveLocation(current, location string) (string, error) {
	loc, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	if loc.IsAbs() {
		return location, nil
	}

	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	origin := base.Scheme + "://" + base.Host

	if strings.HasPrefix(location, "/") {
		return origin + location, nil
	}

	dir := base.Path
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i+1]
	} else {
		dir = "/"
	}

	joined := dir + "/" + location
	path, rest := joined, ""
	if i := strings.IndexAny(joined, "?#"); i >= 0 {
		path, rest = joined[:i], joined[i:]
	}
	return origin + slashRun.ReplaceAllString(path, "/") + rest, nil
}
