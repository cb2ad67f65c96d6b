package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/cinesync/cinesync/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := config.New()

		Convey("Then defaults are sensible", func() {
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.IngestQueueSize, ShouldEqual, 10_000)
			So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
			So(cfg.SectionSize, ShouldEqual, 20)
			So(cfg.MaxCandidates, ShouldEqual, 2_000)
			So(cfg.BlendTopSize, ShouldEqual, 10)
			So(cfg.TMDBBaseURL, ShouldNotBeEmpty)
			So(cfg.TMDBAPIKey, ShouldBeEmpty)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given the configuration loader", t, func() {
		ctx := context.Background()

		// Loader reads the process environment; keep each case hermetic.
		cleanup := func() {
			os.Unsetenv("CINESYNC_CONFIG")
			os.Unsetenv("CINESYNC_ADDR")
			os.Unsetenv("CINESYNC_QUEUE_SIZE")
			os.Unsetenv("CINESYNC_LOG_LEVEL")
			os.Unsetenv("CINESYNC_SECTION_SIZE")
		}
		cleanup()
		Reset(cleanup)

		Convey("When nothing overrides the defaults", func() {
			cfg, err := config.Load(ctx)

			Convey("Then the defaults load", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
			})
		})

		Convey("When env vars override fields", func() {
			os.Setenv("CINESYNC_ADDR", ":9090")
			os.Setenv("CINESYNC_QUEUE_SIZE", "123")
			os.Setenv("CINESYNC_LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)

			Convey("Then the overrides win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.IngestQueueSize, ShouldEqual, 123)
				So(cfg.LogLevel, ShouldEqual, "debug")
			})
		})

		Convey("When a YAML file is provided", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			content := []byte("addr: \":7070\"\nsection_size: 5\n")
			So(os.WriteFile(path, content, 0o600), ShouldBeNil)
			os.Setenv("CINESYNC_CONFIG", path)

			cfg, err := config.Load(ctx)

			Convey("Then the file layer overrides defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.SectionSize, ShouldEqual, 5)
			})

			Convey("And env still beats the file", func() {
				os.Setenv("CINESYNC_ADDR", ":6060")

				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.SectionSize, ShouldEqual, 5)
			})
		})

		Convey("When the config file is missing", func() {
			os.Setenv("CINESYNC_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

			_, err := config.Load(ctx)

			Convey("Then loading fails with a load error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, config.ErrLoadConfig.Error())
			})
		})

		Convey("When an override is invalid", func() {
			os.Setenv("CINESYNC_QUEUE_SIZE", "0")

			_, err := config.Load(ctx)

			Convey("Then validation rejects it", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, config.ErrInvalidConfig.Error())
			})
		})
	})
}
