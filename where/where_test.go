package where

import (
	"path/filepath"
	"testing"

	"github.com/cuelink/cuelink/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestDirectories(t *testing.T) {
	Convey("Given the resolved directories", t, func() {
		for name, dir := range map[string]func() string{
			"config":   Config,
			"cache":    Cache,
			"logs":     Logs,
			"chapters": Chapters,
			"temp":     Temp,
		} {
			Convey("The "+name+" directory exists after resolving", func() {
				path := dir()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}

		Convey("The config directory can be overridden", func() {
			t.Setenv(EnvConfigPath, "/custom")
			So(Config(), ShouldEqual, "/custom")
			So(Logs(), ShouldEqual, filepath.Join("/custom", "logs"))
		})

		Convey("The aniskip cache lives in the cache directory", func() {
			So(filepath.Dir(Aniskip()), ShouldEqual, Cache())
		})
	})
}
