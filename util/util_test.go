package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("Given chapter titles", t, func() {
		So(SanitizeFilename("Episode 1: Pilot?"), ShouldEqual, "Episode_1_Pilot")
		So(SanitizeFilename("--intro--"), ShouldEqual, "intro")
		So(SanitizeFilename("a  b"), ShouldEqual, "a_b")
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify picks the noun form", t, func() {
		So(Quantify(1, "chapter", "chapters"), ShouldEqual, "1 chapter")
		So(Quantify(0, "chapter", "chapters"), ShouldEqual, "0 chapters")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem drops directory and extension", t, func() {
		So(FileStem("talks/ep1.chapters.yaml"), ShouldEqual, "ep1.chapters")
		So(FileStem("ep1"), ShouldEqual, "ep1")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max and Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1.5, 0.5), ShouldEqual, 0.5)
		So(Max[int](), ShouldEqual, 0)
	})
}
