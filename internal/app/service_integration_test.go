package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/arena/internal/adapters/repository"
	service "github.com/okian/arena/internal/app"
	"github.com/okian/arena/internal/domain/game"
	"github.com/okian/arena/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func seed(v int64) *int64 { return &v }

func startedService(ctx context.Context, opts ...service.Option) *service.Service {
	svc := service.New(append([]service.Option{service.WithWorkerCount(2)}, opts...)...)
	So(svc.Start(ctx), ShouldBeNil)
	return svc
}

func TestServiceGames(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		svc := startedService(ctx)
		defer func() { _ = svc.Stop(ctx) }()

		Convey("When a game is created with the default cast", func() {
			g, err := svc.CreateGame(ctx, types.CreateGame{Seed: seed(11)})
			So(err, ShouldBeNil)

			Convey("Then it opens at the bloodbath with 24 living tributes in 12 districts", func() {
				So(g.ID, ShouldNotBeEmpty)
				So(g.Phase, ShouldEqual, "bloodbath")
				So(g.Alive, ShouldEqual, 24)
				So(g.Total, ShouldEqual, 24)
				So(g.Districts, ShouldHaveLength, 12)
				So(g.Seed, ShouldEqual, 11)
			})

			Convey("Then it is listed and can be fetched", func() {
				list, err := svc.ListGames(ctx)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 1)
				So(list[0].ID, ShouldEqual, g.ID)

				got, err := svc.Game(ctx, g.ID)
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, g.ID)
			})

			Convey("Then a step queues events and blocks the next step until revealed", func() {
				step, err := svc.Step(ctx, g.ID)
				So(err, ShouldBeNil)
				So(step.Phase, ShouldEqual, "bloodbath")
				So(step.Events, ShouldNotBeEmpty)
				So(step.NextPhase, ShouldEqual, "day")
				So(step.NextDay, ShouldEqual, 1)

				_, err = svc.Step(ctx, g.ID)
				So(errors.Is(err, game.ErrEventsPending), ShouldBeTrue)

				events, err := svc.Events(ctx, g.ID, nil)
				So(err, ShouldBeNil)
				So(events, ShouldBeEmpty)

				var last types.Reveal
				for i := range step.Events {
					last, err = svc.Reveal(ctx, g.ID)
					So(err, ShouldBeNil)
					So(last.Event.ID, ShouldEqual, step.Events[i].ID)
				}
				So(last.Pending, ShouldEqual, 0)
				So(last.Alive, ShouldEqual, 24-len(step.Deaths))

				_, err = svc.Reveal(ctx, g.ID)
				So(errors.Is(err, game.ErrNothingToReveal), ShouldBeTrue)

				events, err = svc.Events(ctx, g.ID, nil)
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, len(step.Events))

				day := 0
				byDay, err := svc.Events(ctx, g.ID, &day)
				So(err, ShouldBeNil)
				So(byDay, ShouldHaveLength, len(step.Events))

				other := 5
				byDay, err = svc.Events(ctx, g.ID, &other)
				So(err, ShouldBeNil)
				So(byDay, ShouldBeEmpty)
			})

			Convey("Then autoplay runs it to the end and placements rank everyone", func() {
				final, err := svc.Autoplay(ctx, g.ID)
				So(err, ShouldBeNil)
				So(final.Finished, ShouldBeTrue)
				So(final.Pending, ShouldEqual, 0)
				So(final.Alive, ShouldBeLessThanOrEqualTo, 1)

				placements, err := svc.Placements(ctx, g.ID)
				So(err, ShouldBeNil)
				So(placements, ShouldHaveLength, 24)
				So(placements[0].Rank, ShouldEqual, 1)
				if final.Winner != "" {
					So(placements[0].Tribute.ID, ShouldEqual, final.Winner)
				}

				_, err = svc.Step(ctx, g.ID)
				So(errors.Is(err, game.ErrGameOver), ShouldBeTrue)
			})

			Convey("Then a reset replays the same story", func() {
				first, err := svc.Autoplay(ctx, g.ID)
				So(err, ShouldBeNil)
				firstEvents, _ := svc.Events(ctx, g.ID, nil)

				reset, err := svc.Reset(ctx, g.ID)
				So(err, ShouldBeNil)
				So(reset.Alive, ShouldEqual, 24)
				So(reset.Phase, ShouldEqual, "bloodbath")
				So(reset.Finished, ShouldBeFalse)

				second, err := svc.Autoplay(ctx, g.ID)
				So(err, ShouldBeNil)
				secondEvents, _ := svc.Events(ctx, g.ID, nil)

				So(second.Winner, ShouldEqual, first.Winner)
				So(second.Day, ShouldEqual, first.Day)
				So(len(secondEvents), ShouldEqual, len(firstEvents))
				for i := range firstEvents {
					So(secondEvents[i].Text, ShouldEqual, firstEvents[i].Text)
				}
			})

			Convey("Then deleting it makes it unknown", func() {
				So(svc.DeleteGame(ctx, g.ID), ShouldBeNil)
				_, err := svc.Game(ctx, g.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(svc.DeleteGame(ctx, g.ID), repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a game is created with a custom cast", func() {
			g, err := svc.CreateGame(ctx, types.CreateGame{Tributes: []types.TributeInput{
				{Name: "Ash", Gender: "male"},
				{Name: "Bryn", Gender: "female"},
			}})

			Convey("Then both tributes share district 1", func() {
				So(err, ShouldBeNil)
				So(g.Tributes, ShouldHaveLength, 2)
				So(g.Tributes[0].DistrictID, ShouldEqual, 1)
				So(g.Tributes[1].DistrictID, ShouldEqual, 1)
			})
		})

		Convey("When a cast is invalid", func() {
			_, oddErr := svc.CreateGame(ctx, types.CreateGame{Tributes: []types.TributeInput{{Name: "Solo"}}})
			_, genderErr := svc.CreateGame(ctx, types.CreateGame{Tributes: []types.TributeInput{
				{Name: "A", Gender: "robot"}, {Name: "B"},
			}})

			Convey("Then creation is refused", func() {
				So(errors.Is(oddErr, game.ErrInvalidRoster), ShouldBeTrue)
				So(errors.Is(genderErr, service.ErrInvalidRequest), ShouldBeTrue)
			})
		})

		Convey("When a game id is unknown", func() {
			_, err := svc.Step(ctx, "missing")

			Convey("Then the store's not-found error surfaces", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestServiceCapacity(t *testing.T) {
	Convey("Given a service limited to one game", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc := startedService(ctx, service.WithMaxGames(1))
		defer func() { _ = svc.Stop(ctx) }()

		_, err := svc.CreateGame(ctx, types.CreateGame{})
		So(err, ShouldBeNil)

		Convey("When a second game is created", func() {
			_, err := svc.CreateGame(ctx, types.CreateGame{})

			Convey("Then the store refuses it", func() {
				So(errors.Is(err, repository.ErrCapacity), ShouldBeTrue)
			})
		})
	})
}

func TestServiceBatch(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		svc := startedService(ctx, service.WithQueueSize(4), service.WithMaxBatchGames(50))
		defer func() { _ = svc.Stop(ctx) }()

		Convey("When a seeded batch runs", func() {
			report, err := svc.RunBatch(ctx, types.BatchRequest{Games: 12, Seed: seed(100)})
			So(err, ShouldBeNil)

			Convey("Then every game is accounted for", func() {
				So(report.Games, ShouldEqual, 12)
				So(report.Completed+report.Failed, ShouldEqual, 12)
				wins := 0
				for _, n := range report.WinsByDistrict {
					wins += n
				}
				So(wins+report.NoSurvivor, ShouldEqual, report.Completed)
				So(report.MeanDays, ShouldBeGreaterThan, 0)
				So(report.MeanEvents, ShouldBeGreaterThan, 0)
			})

			Convey("Then the same seed gives the same outcome", func() {
				again, err := svc.RunBatch(ctx, types.BatchRequest{Games: 12, Seed: seed(100)})
				So(err, ShouldBeNil)
				So(again.WinsByDistrict, ShouldResemble, report.WinsByDistrict)
				So(again.MeanDays, ShouldEqual, report.MeanDays)
				So(again.NoSurvivor, ShouldEqual, report.NoSurvivor)
			})

			Convey("Then batch games are not stored", func() {
				list, err := svc.ListGames(ctx)
				So(err, ShouldBeNil)
				So(list, ShouldBeEmpty)
			})
		})

		Convey("When the batch size is out of range", func() {
			_, zeroErr := svc.RunBatch(ctx, types.BatchRequest{Games: 0})
			_, bigErr := svc.RunBatch(ctx, types.BatchRequest{Games: 51})

			Convey("Then it is rejected", func() {
				So(errors.Is(zeroErr, service.ErrInvalidRequest), ShouldBeTrue)
				So(errors.Is(bigErr, service.ErrInvalidRequest), ShouldBeTrue)
			})
		})
	})
}
