package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/arena/internal/adapters/http/api"
	"github.com/okian/arena/internal/adapters/http/swagger"
	service "github.com/okian/arena/internal/app"
	"github.com/okian/arena/internal/config"
	"github.com/okian/arena/pkg/logger"
	"github.com/okian/arena/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		_ = os.Setenv(k, v)
	}
	t.Cleanup(func() {
		for k := range kv {
			_ = os.Unsetenv(k)
		}
	})
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			setEnv(t, map[string]string{
				"ARENA_ADDR":         ":8080",
				"ARENA_QUEUE_SIZE":   "100",
				"ARENA_WORKER_COUNT": "4",
				"ARENA_SEED":         "42",
			})

			convey.Convey("Then the values should be applied", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 100)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
			})
		})

		convey.Convey("When building the service from configuration", func() {
			cfg := config.New()
			cfg.WorkerCount = 3
			cfg.MaxGames = 7
			svc := newService(cfg, logger.Nop())

			convey.Convey("Then the options should reach the service", func() {
				stats := svc.GetStats()
				convey.So(stats["workerCount"], convey.ShouldEqual, 3)
				convey.So(stats["maxGames"], convey.ShouldEqual, 7)
				convey.So(stats["started"], convey.ShouldBeFalse)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
			convey.So(manager, convey.ShouldNotBeNil)
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When the metrics updaters run until their context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			convey.So(func() { startServiceMetricsUpdater(ctx, service.New()) }, convey.ShouldNotPanic)
		})

		convey.Convey("When updating metrics directly", func() {
			convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(service.New()) }, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given a fully wired application", t, func() {
		setEnv(t, map[string]string{
			"ARENA_WORKER_COUNT": "2",
			"ARENA_SEED":         "7",
		})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)

		svc := newService(cfg, logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		mux := http.NewServeMux()
		swagger.Register(ctx, mux)
		api.NewServer(svc, svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		convey.Convey("Then a game can be created over HTTP", func() {
			resp, err := http.Post(srv.URL+"/games", "application/json", strings.NewReader(`{}`))
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusCreated)
			convey.So(resp.Header.Get("Location"), convey.ShouldStartWith, "/games/")
		})

		convey.Convey("Then the docs and metrics endpoints respond", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz", "/stats"} {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then service metrics reflect the running service", func() {
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When the address is empty", func() {
			setEnv(t, map[string]string{"ARENA_ADDR": ""})

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the catalog path does not exist", func() {
			cfg := config.New()
			cfg.CatalogPath = "/nonexistent/catalog.yaml"
			svc := newService(cfg, logger.Nop())

			convey.Convey("Then the service should refuse to start", func() {
				convey.So(svc.Start(context.Background()), convey.ShouldNotBeNil)
			})
		})
	})
}
