package timecode

import (
	"math"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should parse a start-only timecode", func() {
			r, ok := Parse("00:10").Get()
			So(ok, ShouldBeTrue)
			So(r.Start, ShouldEqual, 10)
			So(r.End.IsAbsent(), ShouldBeTrue)
		})

		Convey("Should parse a closed range", func() {
			r, ok := Parse("01:00,02:00").Get()
			So(ok, ShouldBeTrue)
			So(r.Start, ShouldEqual, 60)
			So(r.End.MustGet(), ShouldEqual, 120)
		})

		Convey("Should accept '-' as separator", func() {
			r := Parse("00:05-00:07").MustGet()
			So(r.End.MustGet(), ShouldEqual, 7)
		})

		Convey("Should discard an end before the start but keep the start", func() {
			r := Parse("10:00,05:00").MustGet()
			So(r.Start, ShouldEqual, 600)
			So(r.End.IsAbsent(), ShouldBeTrue)
		})

		Convey("Should discard an end equal to the start", func() {
			r := Parse("00:30,00:30").MustGet()
			So(r.Start, ShouldEqual, 30)
			So(r.End.IsAbsent(), ShouldBeTrue)
		})

		Convey("Should parse hours and milliseconds", func() {
			r := Parse("01:02:03.004").MustGet()
			So(r.Start, ShouldAlmostEqual, 3723.004, 1e-9)
		})

		Convey("Should find the timecode inside a full address", func() {
			r := Parse("https://example.org/episode-12#t=00:01:30").MustGet()
			So(r.Start, ShouldEqual, 90)
		})

		Convey("Should report no match for garbage", func() {
			So(Parse("abc").IsAbsent(), ShouldBeTrue)
			So(Parse("").IsAbsent(), ShouldBeTrue)
			So(Parse("1:2").IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestGenerate(t *testing.T) {
	Convey("Generate", t, func() {
		Convey("Should render minutes and seconds only", func() {
			So(Generate(Open(10)), ShouldEqual, "00:10")
		})

		Convey("Should render a closed range", func() {
			So(Generate(Closed(60, 120)), ShouldEqual, "01:00,02:00")
		})

		Convey("Should add hours and milliseconds only when non-zero", func() {
			So(Generate(Open(3723.004)), ShouldEqual, "01:02:03.004")
			So(Generate(Open(3600)), ShouldEqual, "01:00:00")
			So(Generate(Open(0.5)), ShouldEqual, "00:00.500")
		})

		Convey("Should drop an invalid end", func() {
			So(Generate(Range{Start: 600, End: mo.Some(300.0)}), ShouldEqual, "10:00")
			So(Generate(Range{Start: 0, End: mo.Some(float64(MaxEnd))}), ShouldEqual, "00:00")
			So(Generate(Range{Start: 0, End: mo.Some(0.0)}), ShouldEqual, "00:00")
		})

		Convey("Should collapse negative and non-finite starts", func() {
			So(Part(-4), ShouldEqual, "00:00")
			So(Part(math.NaN()), ShouldEqual, "00:00")
			So(Part(math.Inf(1)), ShouldEqual, "00:00")
		})

		Convey("Should prefix fragments with t=", func() {
			So(Fragment(Closed(60, 90)), ShouldEqual, "t=01:00,01:30")
		})
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("Given timecodes accepted by Parse", t, func() {
		inputs := []string{
			"00:10",
			"01:00,02:00",
			"10:00,05:00",
			"01:02:03.004",
			"00:00.999-00:01.001",
			"59:59,01:00:00",
			"99:59:59.999",
		}

		Convey("Parse(Generate(r)) should equal r", func() {
			for _, in := range inputs {
				r := Parse(in).MustGet()
				back, ok := Parse(Generate(r)).Get()
				So(ok, ShouldBeTrue)
				So(back, ShouldResemble, r)
			}
		})
	})
}

func TestFromHref(t *testing.T) {
	Convey("FromHref", t, func() {
		Convey("Should read the t key of the fragment", func() {
			r := FromHref("https://example.org/show?id=12:30:00#t=00:20,00:40").MustGet()
			So(r.Start, ShouldEqual, 20)
			So(r.End.MustGet(), ShouldEqual, 40)
		})

		Convey("Should read t among other fragment keys", func() {
			r := FromHref("https://example.org/#chapter=2&t=01:00").MustGet()
			So(r.Start, ShouldEqual, 60)
		})

		Convey("Should fall back to scanning the whole address", func() {
			r := FromHref("page.html#01:30").MustGet()
			So(r.Start, ShouldEqual, 90)
		})

		Convey("Should report no match for an address without a timecode", func() {
			So(FromHref("https://example.org/#intro").IsAbsent(), ShouldBeTrue)
			So(FromHref("").IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("WithFragment", t, func() {
		So(WithFragment("https://example.org/a#old", "t=00:10"), ShouldEqual, "https://example.org/a#t=00:10")
		So(WithFragment("https://example.org/a", "t=00:10"), ShouldEqual, "https://example.org/a#t=00:10")
		So(WithFragment("https://example.org/a#old", ""), ShouldEqual, "https://example.org/a")
	})
}
