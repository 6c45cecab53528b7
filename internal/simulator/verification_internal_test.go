package simulator

import (
	"testing"

	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVerifyGame(t *testing.T) {
	Convey("Given an all-spares game", t, func() {
		var shots []model.Shot
		for i := 0; i < 10; i++ {
			shots = append(shots, model.Five, model.Spare)
		}
		shots = append(shots, model.Five)
		frames := make([][]model.Shot, 0, 10)
		for i := 0; i < 9; i++ {
			frames = append(frames, []model.Shot{model.Five, model.Spare})
		}
		frames = append(frames, []model.Shot{model.Five, model.Spare, model.Five})
		view := types.FromSnapshot(model.Snapshot{
			GameID:   "g",
			Shots:    shots,
			Frames:   frames,
			Scores:   []int{15, 30, 45, 60, 75, 90, 105, 120, 135, 150},
			GameOver: true,
		})

		Convey("Then a faithful view verifies", func() {
			So(verifyGame(shots, view), ShouldBeNil)
		})

		Convey("Then a wrong total is caught", func() {
			view.Total = 149
			So(verifyGame(shots, view), ShouldNotBeNil)
		})

		Convey("Then a wrong frame is caught", func() {
			view.Frames[3] = []string{"5", "4"}
			So(verifyGame(shots, view), ShouldNotBeNil)
		})

		Convey("Then an unfinished game is caught", func() {
			view.GameOver = false
			So(verifyGame(shots, view), ShouldNotBeNil)
		})
	})
}

func TestShotFor(t *testing.T) {
	Convey("Given knocked pins on different racks", t, func() {
		So(shotFor(10, 10, true), ShouldEqual, model.Strike)
		So(shotFor(10, 10, false), ShouldEqual, model.Spare)
		So(shotFor(3, 3, false), ShouldEqual, model.Spare)
		So(shotFor(4, 10, true), ShouldEqual, model.Four)
		So(shotFor(0, 7, false), ShouldEqual, model.Zero)
	})
}
