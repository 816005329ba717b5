package timecode

import (
	"net/url"
	"strings"

	"github.com/samber/mo"
)

// FromHref extracts the deep link carried by a page address.
//
// The "t" key of the fragment ("#t=01:00" or "#a=b&t=01:00") is preferred. Addresses that
// do not parse as URLs, or whose fragment has no "t" key, are scanned as plain text.
func FromHref(href string) mo.Option[Range] {
	if href == "" {
		return mo.None[Range]()
	}

	if u, err := url.Parse(href); err == nil && u.Fragment != "" {
		if values, err := url.ParseQuery(u.Fragment); err == nil {
			if t := values.Get("t"); t != "" {
				if r, ok := Parse(t).Get(); ok {
					return mo.Some(r)
				}
			}
		}
	}

	return Parse(href)
}

// WithFragment returns href with its fragment replaced by fragment.
func WithFragment(href, fragment string) string {
	base, _, _ := strings.Cut(href, "#")
	if fragment == "" {
		return base
	}
	return base + "#" + fragment
}
