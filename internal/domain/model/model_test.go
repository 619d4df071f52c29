package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/arena/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestGender(t *testing.T) {
	convey.Convey("Given gender input", t, func() {
		convey.Convey("When parsing known values", func() {
			m, errM := model.ParseGender(" Male ")
			f, errF := model.ParseGender("female")
			o, errO := model.ParseGender("")

			convey.Convey("Then they map to genders", func() {
				convey.So(errM, convey.ShouldBeNil)
				convey.So(errF, convey.ShouldBeNil)
				convey.So(errO, convey.ShouldBeNil)
				convey.So(m, convey.ShouldEqual, model.GenderMale)
				convey.So(f, convey.ShouldEqual, model.GenderFemale)
				convey.So(o, convey.ShouldEqual, model.GenderOther)
			})
		})

		convey.Convey("When parsing an unknown value", func() {
			_, err := model.ParseGender("robot")

			convey.Convey("Then ErrInvalidGender is returned", func() {
				convey.So(errors.Is(err, model.ErrInvalidGender), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When asking for pronouns", func() {
			convey.So(model.GenderMale.Subject(), convey.ShouldEqual, "he")
			convey.So(model.GenderFemale.Object(), convey.ShouldEqual, "her")
			convey.So(model.GenderFemale.Possessive(), convey.ShouldEqual, "her")
			convey.So(model.GenderOther.Subject(), convey.ShouldEqual, "they")
			convey.So(model.GenderOther.Possessive(), convey.ShouldEqual, "their")
			convey.So(model.Gender("").Object(), convey.ShouldEqual, "them")
		})
	})
}

func TestPhase(t *testing.T) {
	convey.Convey("Given phases", t, func() {
		convey.So(model.Categories(), convey.ShouldHaveLength, 5)
		convey.So(model.PhaseArena.IsCategory(), convey.ShouldBeTrue)
		convey.So(model.PhaseSetup.IsCategory(), convey.ShouldBeFalse)
		convey.So(model.PhaseFinished.IsCategory(), convey.ShouldBeFalse)
		convey.So(model.PhaseFeast.Special(), convey.ShouldBeTrue)
		convey.So(model.PhaseDay.Special(), convey.ShouldBeFalse)

		convey.Convey("Then night closes the day", func() {
			convey.So(model.PhaseBloodbath.Order(), convey.ShouldBeLessThan, model.PhaseDay.Order())
			convey.So(model.PhaseDay.Order(), convey.ShouldBeLessThan, model.PhaseFeast.Order())
			convey.So(model.PhaseFeast.Order(), convey.ShouldBeLessThan, model.PhaseArena.Order())
			convey.So(model.PhaseArena.Order(), convey.ShouldBeLessThan, model.PhaseNight.Order())
		})
	})
}

func TestTemplate(t *testing.T) {
	convey.Convey("Given templates", t, func() {
		slot, env := 0, -1
		kill := model.Template{Tributes: 2, Deaths: []int{1}, Killer: &slot}
		hazard := model.Template{Tributes: 1, Deaths: []int{0}, Killer: &env}
		idle := model.Template{Tributes: 1}

		convey.Convey("Then fatality and killer slots are derived", func() {
			convey.So(kill.Fatal(), convey.ShouldBeTrue)
			convey.So(idle.Fatal(), convey.ShouldBeFalse)
			convey.So(idle.Solo(), convey.ShouldBeTrue)

			s, ok := kill.KillerSlot()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(s, convey.ShouldEqual, 0)

			_, ok = hazard.KillerSlot()
			convey.So(ok, convey.ShouldBeFalse)
			_, ok = idle.KillerSlot()
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
