package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/okian/arena/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given the batch command", t, func() {
		var stdout, stderr bytes.Buffer

		convey.Convey("When asked for help", func() {
			code := run([]string{"-help"}, &stdout, &stderr)
			convey.So(code, convey.ShouldEqual, 0)
			convey.So(stdout.String(), convey.ShouldContainSubstring, "Arena Batch Tool")
		})

		convey.Convey("When given an unknown flag", func() {
			code := run([]string{"-bogus"}, &stdout, &stderr)
			convey.So(code, convey.ShouldEqual, 2)
		})

		convey.Convey("When given an invalid format", func() {
			code := run([]string{"-games", "1", "-format", "xml"}, &stdout, &stderr)
			convey.So(code, convey.ShouldEqual, 1)
			convey.So(stderr.String(), convey.ShouldContainSubstring, "format")
		})

		convey.Convey("When playing a small seeded batch as json", func() {
			code := run([]string{"-games", "4", "-seed", "11", "-workers", "2", "-format", "json"}, &stdout, &stderr)
			convey.So(code, convey.ShouldEqual, 0)

			var report types.BatchReport
			convey.So(json.Unmarshal(stdout.Bytes(), &report), convey.ShouldBeNil)
			convey.So(report.Games, convey.ShouldEqual, 4)
			convey.So(report.Completed+report.Failed, convey.ShouldEqual, 4)
		})
	})
}
