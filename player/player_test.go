package player

import (
	"errors"
	"testing"

	"github.com/cuelink/cuelink/chapter"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitize(t *testing.T) {
	Convey("Given media targets", t, func() {
		Convey("Fragments are stripped from web addresses", func() {
			target, err := sanitizeMediaTarget("https://example.org/ep1.mp3#t=01:00")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "https://example.org/ep1.mp3")
		})

		Convey("Local paths are cleaned", func() {
			target, err := sanitizeMediaTarget(" talks/../talks/ep1.mp4 ")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "talks/ep1.mp4")
		})

		Convey("Flags, control characters and foreign schemes are rejected", func() {
			for _, bad := range []string{"", "--script=x.lua", "a\nb", "file:///etc/passwd"} {
				_, err := sanitizeMediaTarget(bad)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("Titles are flattened to one line", func() {
			So(sanitizeTitle(" Episode\n1\t"), ShouldEqual, "Episode 1")
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given mpv replies", t, func() {
		Convey("Successful replies carry their data", func() {
			data, err := decodeResponse([]byte(`{"data":12.5,"error":"success","request_id":0}` + "\n"))
			So(err, ShouldBeNil)
			So(data, ShouldEqual, 12.5)
		})

		Convey("Failed replies become mpv errors", func() {
			_, err := decodeResponse([]byte(`{"error":"property unavailable"}`))
			var mpvErr *mpvError
			So(errors.As(err, &mpvErr), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "property unavailable")
		})

		Convey("Garbage fails to decode", func() {
			_, err := decodeResponse([]byte("nope"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given mpv events", t, func() {
		cases := map[string]EventKind{
			`{"event":"property-change","id":1,"name":"pause","data":false}`:      EventPlay,
			`{"event":"property-change","id":1,"name":"pause","data":true}`:       EventPause,
			`{"event":"property-change","id":2,"name":"eof-reached","data":true}`: EventEnded,
			`{"event":"playback-restart"}`:                                        EventSeek,
		}

		for line, kind := range cases {
			event, ok := decodeEvent([]byte(line))
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, kind)
		}

		Convey("Unrelated lines are dropped", func() {
			for _, line := range []string{
				`{"event":"property-change","id":2,"name":"eof-reached","data":false}`,
				`{"event":"file-loaded"}`,
				`{"data":null,"error":"success"}`,
				`not json`,
			} {
				_, ok := decodeEvent([]byte(line))
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestSimulator(t *testing.T) {
	Convey("Given a simulated engine", t, func() {
		s := NewSimulator(100, 5)

		Convey("It starts paused at zero", func() {
			snap, _ := s.Snapshot()
			So(snap.Paused, ShouldBeTrue)
			So(snap.CurrentTime, ShouldEqual, 0)
		})

		Convey("Seeks land on the next advance", func() {
			So(s.Seek(40), ShouldBeNil)
			snap, _ := s.Snapshot()
			So(snap.CurrentTime, ShouldEqual, 0)

			s.Advance(1)
			snap, _ = s.Snapshot()
			So(snap.CurrentTime, ShouldEqual, 40)
			So(snap.BufferedEnd, ShouldEqual, 45)
		})

		Convey("Playing runs the clock to the end", func() {
			So(s.Play(), ShouldBeNil)
			for i := 0; i < 120; i++ {
				s.Advance(1)
			}
			snap, _ := s.Snapshot()
			So(snap.CurrentTime, ShouldEqual, 100)
			So(snap.Ended, ShouldBeTrue)
			So(s.Calls, ShouldResemble, []string{"play"})
		})

		Convey("Published chapters are kept", func() {
			marks := []*chapter.Mark{chapter.NewMark(0, 10, "Intro", "")}
			So(s.SetChapters(marks), ShouldBeNil)
			So(s.Chapters(), ShouldResemble, marks)
		})

		Convey("Close ends the session once", func() {
			So(s.Close(), ShouldBeNil)
			So(s.Close(), ShouldBeNil)
			_, open := <-s.Wait()
			So(open, ShouldBeFalse)
		})
	})
}
