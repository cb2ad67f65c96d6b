package logger_test

import (
	"context"
	"errors"
	"testing"

	logger "github.com/cinesync/cinesync/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(false), ShouldBeNil)

		Convey("When the global logger is fetched", func() {
			log := logger.Get()

			Convey("Then it logs without panicking", func() {
				ctx := context.Background()
				So(func() {
					log.Debug(ctx, "debug line", logger.String("k", "v"))
					log.Info(ctx, "info line", logger.Int("n", 1))
					log.Warn(ctx, "warn line", logger.Int64("id", 42))
					log.Error(ctx, "error line", logger.Error(errors.New("boom")))
				}, ShouldNotPanic)
			})
		})

		Convey("When a named logger is derived", func() {
			named := logger.Named("worker")

			Convey("Then it is usable independently", func() {
				So(named, ShouldNotBeNil)
				So(func() {
					named.Info(context.Background(), "scoped line", logger.Float64("f", 0.5))
				}, ShouldNotPanic)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		So(logger.Init(false), ShouldBeNil)

		Convey("Then recognized names apply cleanly", func() {
			for _, level := range []string{"debug", "info", "warn", "warning", "error", "", "INFO"} {
				So(logger.SetLevelString(level), ShouldBeNil)
			}
		})

		Convey("Then unknown names are rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}
