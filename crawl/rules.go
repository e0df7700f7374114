package crawl

import (
	"net/url"
	"path"
	"strings"
)

// assetExtensions never hold recipe pages.
var assetExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {}, ".avif": {}, ".ico": {},
	".css": {}, ".js": {}, ".mjs": {}, ".json": {}, ".xml": {}, ".txt": {},
	".woff": {}, ".woff2": {}, ".ttf": {},
	".mp4": {}, ".webm": {}, ".mp3": {},
	".zip": {}, ".gz": {}, ".pdf": {},
}

// sameHost reports whether rawURL is served by host.
func sameHost(rawURL, host string) bool {
	parsed, err := url.Parse(rawURL)
	return err == nil && parsed.Host == host
}

// isAsset reports whether rawURL points at a static file.
func isAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := assetExtensions[strings.ToLower(path.Ext(parsed.Path))]
	return ok
}

// canonical drops the fragment and a trailing slash so one page is queued once.
func canonical(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}
	return parsed.String()
}

// resolve makes href absolute against base. Non-navigational links yield "".
func resolve(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	for _, prefix := range []string{"#", "mailto:", "javascript:", "tel:", "data:"} {
		if strings.HasPrefix(strings.ToLower(href), prefix) {
			return ""
		}
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	abs.Fragment = ""
	return abs.String()
}
