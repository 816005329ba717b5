package aniskip

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuelink/cuelink/chapter"
	. "github.com/smartystreets/goconvey/convey"
)

const found = `{
  "found": true,
  "results": [
    {"interval": {"start_time": 90.5, "end_time": 180.5}, "skip_type": "op"},
    {"interval": {"start_time": 1300, "end_time": 1390}, "skip_type": "ed"},
    {"interval": {"start_time": 10, "end_time": 5}, "skip_type": "op"},
    {"interval": {"start_time": 0, "end_time": 20}, "skip_type": "recap"}
  ]
}`

func server(requests *[]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests = append(*requests, r.URL.Path)
		switch r.URL.Path {
		case "/1535/1":
			fmt.Fprint(w, found)
		case "/1535/2":
			fmt.Fprint(w, `{"found": false, "results": []}`)
		case "/1535/3":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSegments(t *testing.T) {
	Convey("Given an AniSkip server", t, func() {
		var requests []string
		srv := server(&requests)
		defer srv.Close()

		client := NewClient(srv.URL)

		Convey("Known episodes yield their opening and ending", func() {
			segments, err := client.Segments(context.Background(), 1535, 1)
			So(err, ShouldBeNil)
			So(segments, ShouldResemble, []Segment{
				{Kind: Opening, Start: 90.5, End: 180.5},
				{Kind: Ending, Start: 1300, End: 1390},
			})
			So(requests, ShouldResemble, []string{"/1535/1"})
		})

		Convey("Episodes without data yield nothing", func() {
			segments, err := client.Segments(context.Background(), 1535, 2)
			So(err, ShouldBeNil)
			So(segments, ShouldBeEmpty)

			segments, err = client.Segments(context.Background(), 1, 1)
			So(err, ShouldBeNil)
			So(segments, ShouldBeEmpty)
		})

		Convey("Server failures are errors", func() {
			_, err := client.Segments(context.Background(), 1535, 3)
			So(err, ShouldNotBeNil)
		})

		Convey("A cancelled context fails the request", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := client.Segments(ctx, 1535, 1)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMarks(t *testing.T) {
	Convey("Given fetched segments", t, func() {
		segments := []Segment{
			{Kind: Opening, Start: 90, End: 180},
			{Kind: Ending, Start: 1300, End: 1390},
		}
		remote := Marks(segments, "https://example.org/ep1")

		Convey("They become titled marks", func() {
			So(remote, ShouldHaveLength, 2)
			So(remote[0].Title, ShouldEqual, "Opening")
			So(remote[1].Title, ShouldEqual, "Ending")
			So(remote[1].End, ShouldEqual, 1390)
		})

		Convey("Merging orders them among authored marks", func() {
			authored := []*chapter.Mark{
				chapter.NewMark(0, 90, "Cold open", "https://example.org/ep1"),
				chapter.NewMark(180, 1300, "Part A", "https://example.org/ep1"),
			}
			merged := Merge(authored, remote)
			titles := make([]string, len(merged))
			for i, m := range merged {
				titles[i] = m.Title
			}
			So(titles, ShouldResemble, []string{"Cold open", "Opening", "Part A", "Ending"})
			So(authored, ShouldHaveLength, 2)
		})
	})
}
