package report_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smartystreets/goconvey/convey"

	"github.com/ryanwoodie/dmst-verify/internal/adapters/report"
	"github.com/ryanwoodie/dmst-verify/internal/domain/scoring"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestReporterWrite(t *testing.T) {
	convey.Convey("Given a reporter with defaults", t, func() {
		r := report.New()

		convey.Convey("When every comparison matches", func() {
			results := []scoring.Comparison{
				{FlightID: 1, Index: 100, FreeExpected: dec("420"), FreeActual: dec("420.1")},
				{FlightID: 2, Index: 104},
			}
			var buf strings.Builder
			s := r.Write(&buf, results)

			convey.Convey("Then only the counts are printed", func() {
				convey.So(s.Checked, convey.ShouldEqual, 2)
				convey.So(buf.String(), convey.ShouldEqual,
					"Checked 2 flights\nDMSt Free mismatches: 0\nDMSt Task mismatches: 0\n")
			})
		})

		convey.Convey("When both score types mismatch", func() {
			results := []scoring.Comparison{
				{FlightID: 10, Index: 98, FreeExpected: dec("420"), FreeActual: dec("400")},
				{FlightID: 11, Index: 110, TaskExpected: dec("510"), TaskActual: dec("509"), TaskNote: scoring.NoteFromAUDistance},
			}
			var buf strings.Builder
			s := r.Write(&buf, results)
			out := buf.String()

			convey.Convey("Then each category prints its sample section", func() {
				convey.So(len(s.FreeMismatches), convey.ShouldEqual, 1)
				convey.So(len(s.TaskMismatches), convey.ShouldEqual, 1)
				convey.So(out, convey.ShouldContainSubstring, "DMSt Free mismatches: 1")
				convey.So(out, convey.ShouldContainSubstring, "DMSt Task mismatches: 1")
				convey.So(out, convey.ShouldContainSubstring, "\nSample free mismatches:\nflight 10 (H=98) -> calc 420 / api 400\n")
				convey.So(out, convey.ShouldContainSubstring, "\nSample task mismatches:\nflight 11 (H=110) -> calc 510 / api 509 [from au distance]\n")
			})
		})

		convey.Convey("When one flight mismatches on both types", func() {
			results := []scoring.Comparison{{
				FlightID: 12, Index: 100,
				FreeExpected: dec("420"), FreeActual: dec("300"),
				TaskExpected: dec("510"), TaskActual: dec("200"), TaskNote: scoring.NoteActual,
			}}
			s := r.Summarize(results)

			convey.Convey("Then it lands in both partitions", func() {
				convey.So(len(s.FreeMismatches), convey.ShouldEqual, 1)
				convey.So(len(s.TaskMismatches), convey.ShouldEqual, 1)
			})
		})
	})

	convey.Convey("Given more mismatches than the sample limit", t, func() {
		r := report.New(report.WithSampleLimit(3))
		var results []scoring.Comparison
		for i := 0; i < 7; i++ {
			results = append(results, scoring.Comparison{
				FlightID:     int64(100 + i),
				Index:        100,
				FreeExpected: dec("420"),
				FreeActual:   dec(fmt.Sprintf("%d", i)),
			})
		}

		var buf strings.Builder
		s := r.Write(&buf, results)
		out := buf.String()

		convey.Convey("Then samples are capped in encounter order", func() {
			convey.So(len(s.FreeMismatches), convey.ShouldEqual, 7)
			convey.So(strings.Count(out, "flight "), convey.ShouldEqual, 3)
			convey.So(out, convey.ShouldContainSubstring, "flight 100 ")
			convey.So(out, convey.ShouldContainSubstring, "flight 102 ")
			convey.So(out, convey.ShouldNotContainSubstring, "flight 103 ")
		})
	})

	convey.Convey("Given a custom tolerance", t, func() {
		r := report.New(report.WithTolerance(decimal.RequireFromString("1.0")))
		results := []scoring.Comparison{
			{FlightID: 1, Index: 100, FreeExpected: dec("420"), FreeActual: dec("420.9")},
		}
		s := r.Summarize(results)

		convey.Convey("Then matches are judged against it", func() {
			convey.So(s.FreeMismatches, convey.ShouldBeEmpty)
		})
	})
}
