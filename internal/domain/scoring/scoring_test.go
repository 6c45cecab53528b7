package scoring_test

import (
	"testing"

	"github.com/okian/bowling/internal/domain/model"
	scoring "github.com/okian/bowling/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func repeat(s model.Shot, n int) []model.Shot {
	shots := make([]model.Shot, 0, n)
	for i := 0; i < n; i++ {
		shots = append(shots, s)
	}
	return shots
}

func concat(parts ...[]model.Shot) []model.Shot {
	var out []model.Shot
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestPinValues(t *testing.T) {
	Convey("Given a mix of shots", t, func() {
		shots := []model.Shot{model.Strike, model.Five, model.Spare, model.Three, model.Zero}

		Convey("When computing pin values", func() {
			pins := scoring.PinValues(shots)

			Convey("Then strikes are ten and spares top up the previous shot", func() {
				So(pins, ShouldResemble, []int{10, 5, 5, 3, 0})
			})
		})

		Convey("When a spare follows a strike in the tenth frame", func() {
			pins := scoring.PinValues([]model.Shot{model.Strike, model.Spare})

			Convey("Then the spare knocks nothing down", func() {
				So(pins, ShouldResemble, []int{10, 0})
			})
		})
	})
}

func TestCumulative(t *testing.T) {
	Convey("Given recorded shots", t, func() {
		Convey("When nothing has been thrown", func() {
			Convey("Then there are no scores", func() {
				So(scoring.Cumulative(nil), ShouldBeEmpty)
				So(scoring.Total(nil), ShouldEqual, 0)
			})
		})

		Convey("When twelve strikes are thrown", func() {
			scores := scoring.Cumulative(repeat(model.Strike, 12))

			Convey("Then the game is perfect", func() {
				So(scores, ShouldResemble, []int{30, 60, 90, 120, 150, 180, 210, 240, 270, 300})
			})
		})

		Convey("When every ball is a gutter ball", func() {
			scores := scoring.Cumulative(repeat(model.Zero, 20))

			Convey("Then every frame scores zero", func() {
				So(scores, ShouldResemble, make([]int, 10))
			})
		})

		Convey("When every ball knocks down one pin", func() {
			scores := scoring.Cumulative(repeat(model.One, 20))

			Convey("Then each frame adds two", func() {
				So(scores, ShouldResemble, []int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20})
			})
		})

		Convey("When a spare is followed by a three", func() {
			scores := scoring.Cumulative([]model.Shot{model.Five, model.Spare, model.Three})

			Convey("Then the spare frame scores thirteen and the open frame is withheld", func() {
				So(scores, ShouldResemble, []int{13})
			})
		})

		Convey("When a strike is still waiting for its bonus", func() {
			So(scoring.Cumulative([]model.Shot{model.Strike}), ShouldBeEmpty)
			So(scoring.Cumulative([]model.Shot{model.Strike, model.Three}), ShouldBeEmpty)

			Convey("Then it scores as soon as two more shots are in", func() {
				So(scoring.Cumulative([]model.Shot{model.Strike, model.Three, model.Four}), ShouldResemble, []int{17, 24})
			})
		})

		Convey("When a strike waits and later frames are complete", func() {
			shots := []model.Shot{model.Two, model.Three, model.Strike, model.Strike}

			Convey("Then scoring stops at the first unfinished frame", func() {
				So(scoring.Cumulative(shots), ShouldResemble, []int{5})
			})
		})

		Convey("When a strike is followed by a spare", func() {
			shots := []model.Shot{model.Strike, model.Six, model.Spare, model.Zero, model.Zero}

			Convey("Then the strike bonus is the full ten", func() {
				So(scoring.Cumulative(shots), ShouldResemble, []int{20, 30, 30})
			})
		})

		Convey("When every frame is a five-spare with a five bonus", func() {
			var shots []model.Shot
			for i := 0; i < 10; i++ {
				shots = append(shots, model.Five, model.Spare)
			}
			shots = append(shots, model.Five)

			Convey("Then the game scores 150", func() {
				So(scoring.Total(shots), ShouldEqual, 150)
				So(scoring.Cumulative(shots), ShouldHaveLength, 10)
			})
		})

		Convey("When the tenth frame is open", func() {
			shots := concat(repeat(model.Zero, 18), []model.Shot{model.Three, model.Four})

			Convey("Then it scores the sum of its two shots", func() {
				scores := scoring.Cumulative(shots)
				So(scores, ShouldHaveLength, 10)
				So(scores[9], ShouldEqual, 7)
			})
		})

		Convey("When the tenth frame has a spare but no bonus yet", func() {
			shots := concat(repeat(model.Zero, 18), []model.Shot{model.Five, model.Spare})

			Convey("Then the tenth frame is withheld", func() {
				So(scoring.Cumulative(shots), ShouldHaveLength, 9)
			})

			Convey("And the bonus shot closes it", func() {
				scores := scoring.Cumulative(append(shots, model.Seven))
				So(scores, ShouldHaveLength, 10)
				So(scores[9], ShouldEqual, 17)
			})
		})

		Convey("When the ninth frame strike borrows from the tenth", func() {
			shots := concat(repeat(model.Zero, 16), []model.Shot{model.Strike, model.Three, model.Four})

			Convey("Then both frames score once the tenth closes", func() {
				scores := scoring.Cumulative(shots)
				So(scores, ShouldHaveLength, 10)
				So(scores[8], ShouldEqual, 17)
				So(scores[9], ShouldEqual, 24)
			})
		})

		Convey("When the tenth frame is strike, strike, four", func() {
			shots := concat(repeat(model.Zero, 18), []model.Shot{model.Strike, model.Strike, model.Four})

			Convey("Then it scores all three shots once", func() {
				So(scoring.Total(shots), ShouldEqual, 24)
			})
		})
	})
}

func TestCumulativeIsPure(t *testing.T) {
	Convey("Given the same shots scored twice", t, func() {
		shots := []model.Shot{model.Strike, model.Seven, model.Spare, model.Four, model.Two}
		before := append([]model.Shot(nil), shots...)

		first := scoring.Cumulative(shots)
		second := scoring.Cumulative(shots)

		Convey("Then results are identical and the input is untouched", func() {
			So(first, ShouldResemble, second)
			So(shots, ShouldResemble, before)
			So(first, ShouldResemble, []int{20, 34, 40})
		})
	})
}
