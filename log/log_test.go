package log

import (
	"testing"

	"github.com/cuelink/cuelink/filesystem"
	"github.com/cuelink/cuelink/key"
	"github.com/cuelink/cuelink/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is off", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Nothing is written", func() {
			Info("dropped")
			files, err := filesystem.API().ReadDir(where.Logs())
			So(err, ShouldBeNil)
			So(files, ShouldBeEmpty)
		})

		Convey("Entries with fields are discarded too", func() {
			So(func() { With(Fields{"session": "a"}).Info("dropped") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is on", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		Reset(func() {
			viper.Set(key.LogsWrite, false)
			enabled = false
		})
		So(Setup(), ShouldBeNil)

		Convey("Messages land in today's file", func() {
			Infof("tick %d", 1)
			files, err := filesystem.API().ReadDir(where.Logs())
			So(err, ShouldBeNil)
			So(files, ShouldHaveLength, 1)
			So(files[0].Size(), ShouldBeGreaterThan, 0)
		})
	})
}
