package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/arena/internal/config"
	"github.com/okian/arena/internal/domain/engine"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/trigger"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.MaxGames, convey.ShouldEqual, 1000)
			convey.So(cfg.Seed, convey.ShouldEqual, 0)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the domain views match the domain defaults", func() {
			convey.So(cfg.FatalityRates(), convey.ShouldResemble, engine.DefaultFatalityRates())
			convey.So(cfg.TriggerPolicy(), convey.ShouldResemble, trigger.DefaultPolicy())
		})

		convey.Convey("When a fatality key is changed", func() {
			cfg.FatalityNight = 0.9

			convey.Convey("Then only that phase changes", func() {
				rates := cfg.FatalityRates()
				convey.So(rates.Rate(model.PhaseNight), convey.ShouldEqual, 0.9)
				convey.So(rates.Rate(model.PhaseDay), convey.ShouldEqual, 0.30)
			})
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with out-of-range values", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = " " }},
			{"unknown log format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"negative max games", func(c *config.Config) { c.MaxGames = -1 }},
			{"negative dedupe size", func(c *config.Config) { c.DedupeSize = -1 }},
			{"zero queue size", func(c *config.Config) { c.QueueSize = 0 }},
			{"zero batch cap", func(c *config.Config) { c.MaxBatchGames = 0 }},
			{"fatality above one", func(c *config.Config) { c.FatalityFeast = 1.5 }},
			{"negative fatality", func(c *config.Config) { c.FatalityBloodbath = -0.1 }},
			{"feast chance above one", func(c *config.Config) { c.FeastChance = 2 }},
			{"negative arena cooldown", func(c *config.Config) { c.ArenaCooldown = -2 }},
		}

		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		}
	})

	convey.Convey("Given boundary probabilities", t, func() {
		cfg := config.New()
		cfg.FatalityDay = 0
		cfg.FatalityFeast = 1
		cfg.LogFormat = "JSON"

		convey.So(cfg.Validate(), convey.ShouldBeNil)
	})
}
