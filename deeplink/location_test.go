package deeplink

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLocation(t *testing.T) {
	Convey("Given a location with a change listener", t, func() {
		loc := NewLocation("https://example.org/ep1#intro")
		var seen []string
		loc.OnChange(func(href string) {
			seen = append(seen, href)
		})

		Convey("SetFragment replaces the fragment and notifies", func() {
			loc.SetFragment("t=00:10")
			So(loc.Href(), ShouldEqual, "https://example.org/ep1#t=00:10")
			So(loc.Fragment(), ShouldEqual, "t=00:10")
			So(seen, ShouldResemble, []string{"https://example.org/ep1#t=00:10"})
		})

		Convey("Setting the same fragment again is silent", func() {
			loc.SetFragment("intro")
			So(seen, ShouldBeEmpty)
		})

		Convey("ReplaceFragment rewrites the address silently", func() {
			loc.ReplaceFragment("t=00:20")
			So(loc.Href(), ShouldEqual, "https://example.org/ep1#t=00:20")
			So(seen, ShouldBeEmpty)
		})

		Convey("Navigating within the page behaves like a hash change", func() {
			loc.Navigate("https://example.org/ep1#t=01:00")
			So(seen, ShouldHaveLength, 1)
		})

		Convey("Navigating to another page is silent", func() {
			loc.Navigate("https://example.org/ep2#t=01:00")
			So(loc.Href(), ShouldEqual, "https://example.org/ep2#t=01:00")
			So(seen, ShouldBeEmpty)
		})
	})
}
