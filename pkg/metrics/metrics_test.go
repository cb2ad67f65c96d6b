package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given manager construction", t, func() {
		Convey("When created with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it registers without collision", func() {
				So(manager, ShouldNotBeNil)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})

		Convey("When created with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("testns"),
				WithSubsystem("testsub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(registry),
			)

			Convey("Then it is created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When the recording helpers run", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					RecordMovieIngested()
					RecordIngestDuplicate()
					RecordVibeComputed(1.5)
					RecordPreferenceUpdate()
					RecordQuizSubmission()
					RecordFeedBuild(2.0)
					RecordBlendBuild()
					UpdateQueueSize(10)
					UpdateQueueCapacity(100)
					UpdateQueueUtilization(0.1)
					RecordQueueEnqueue()
					RecordQueueDequeue()
					RecordQueueEnqueueError()
					UpdateWorkerCount(4)
					RecordWorkerLatency(0.5)
					RecordWorkerError()
					UpdateTotalMovies(3)
					UpdateTotalUsers(2)
					RecordStoreUpdateLatency(0.2)
					RecordStoreQueryLatency(0.1)
					RecordHTTPRequest("movies", "POST", "202")
					RecordHTTPRequestDuration("movies", "POST", "202", 1.0)
					RecordErrorByComponent("queue", "queue_full")
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.01)
				}, ShouldNotPanic)
			})
		})

		Convey("When the registry is gathered", func() {
			families, err := GetRegistry().Gather()

			Convey("Then the recorded series are visible", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
