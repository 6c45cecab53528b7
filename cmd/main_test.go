package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	app "github.com/okian/bowling/internal/app"
	"github.com/okian/bowling/internal/config"
	"github.com/okian/bowling/pkg/logger"
	"github.com/okian/bowling/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given the application routes over a started service", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc := app.New(app.WithQueueSize(cfg.QueueSize))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		mux := newMux(ctx, svc, cfg)

		convey.Convey("When a game is played through them", func() {
			for _, tok := range []string{"X", "7", "/", "3"} {
				req := httptest.NewRequest(http.MethodPost, "/shots", strings.NewReader(`{"shot":"`+tok+`"}`))
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
			req := httptest.NewRequest(http.MethodGet, "/game", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			convey.Convey("Then the game view reflects the shots", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				var g struct {
					Scores []int `json:"scores"`
					Total  int   `json:"total"`
				}
				convey.So(json.NewDecoder(w.Body).Decode(&g), convey.ShouldBeNil)
				convey.So(g.Scores, convey.ShouldResemble, []int{20, 33})
				convey.So(g.Total, convey.ShouldEqual, 33)
			})
		})

		convey.Convey("When the OpenAPI document is requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			convey.Convey("Then it is served", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		updateSystemMetrics()

		convey.Convey("Then the goroutine gauge is populated", func() {
			families, err := metrics.GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)
			found := false
			for _, f := range families {
				if f.GetName() == "bowling_lane_system_goroutine_count" {
					found = len(f.GetMetric()) == 1 && f.GetMetric()[0].GetGauge().GetValue() > 0
				}
			}
			convey.So(found, convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		convey.Convey("Then the updater returns", func() {
			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				close(done)
			}()
			<-done
		})
	})
}
