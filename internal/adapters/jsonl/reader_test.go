package jsonl_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/ryanwoodie/dmst-verify/internal/adapters/jsonl"
	"github.com/ryanwoodie/dmst-verify/internal/domain/model"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flights.jsonl")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestReaderEach(t *testing.T) {
	convey.Convey("Given a JSONL file with blank lines", t, func() {
		ctx := context.Background()
		r := jsonl.NewReader()
		path := writeInput(t, `{"id":1,"dmst_index":100}

{"id":2,"dmst_index":104}

{"id":3,"dmst_index":0}
`)

		convey.Convey("When iterating", func() {
			var ids []int64
			err := r.Each(ctx, path, func(rec model.FlightRecord) error {
				ids = append(ids, rec.ID)
				return nil
			})

			convey.Convey("Then records arrive in input order and blanks are skipped", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ids, convey.ShouldResemble, []int64{1, 2, 3})
			})
		})

		convey.Convey("When the callback returns an error", func() {
			boom := errors.New("boom")
			count := 0
			err := r.Each(ctx, path, func(model.FlightRecord) error {
				count++
				if count == 2 {
					return boom
				}
				return nil
			})

			convey.Convey("Then iteration stops and the error propagates", func() {
				convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
				convey.So(count, convey.ShouldEqual, 2)
			})
		})
	})

	convey.Convey("Given nested record fields", t, func() {
		ctx := context.Background()
		r := jsonl.NewReader()
		path := writeInput(t, `{"id":9,"dmst_index":102,"contest":[{"name":"au","points":407.2,"score":{"distance":300.5,"name":"TR","declared":true}}],"task":{"distance":250,"kind":"SP"},"task_achieved":true}`)

		convey.Convey("When iterating", func() {
			var got model.FlightRecord
			err := r.Each(ctx, path, func(rec model.FlightRecord) error {
				got = rec
				return nil
			})

			convey.Convey("Then the shapes decode with literal number text preserved", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got.DMStIndex, convey.ShouldEqual, 102)
				convey.So(got.Contests, convey.ShouldHaveLength, 1)
				convey.So(got.Contests[0].Points.String(), convey.ShouldEqual, "407.2")
				convey.So(got.Contests[0].Score.Distance.String(), convey.ShouldEqual, "300.5")
				convey.So(got.Contests[0].Score.DeclaredTrue(), convey.ShouldBeTrue)
				convey.So(got.Task.Kind, convey.ShouldEqual, "SP")
				convey.So(got.Achieved(), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a missing input file", t, func() {
		r := jsonl.NewReader()
		err := r.Each(context.Background(), filepath.Join(t.TempDir(), "nope.jsonl"), func(model.FlightRecord) error {
			t.Fatal("callback must not run")
			return nil
		})

		convey.Convey("Then ErrMissingInput is reported", func() {
			convey.So(errors.Is(err, jsonl.ErrMissingInput), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a malformed line", t, func() {
		r := jsonl.NewReader()
		path := writeInput(t, `{"id":1,"dmst_index":100}
{not json}
{"id":3,"dmst_index":100}
`)
		var ids []int64
		err := r.Each(context.Background(), path, func(rec model.FlightRecord) error {
			ids = append(ids, rec.ID)
			return nil
		})

		convey.Convey("Then the run aborts naming the line, without swallowing", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "line 2")
			convey.So(ids, convey.ShouldResemble, []int64{1})
		})
	})

	convey.Convey("Given a record longer than the size cap", t, func() {
		r := jsonl.NewReader(jsonl.WithMaxRecordSize(16))
		path := writeInput(t, `{"id":1,"dmst_index":100,"contest":[]}`)

		err := r.Each(context.Background(), path, func(model.FlightRecord) error { return nil })

		convey.Convey("Then the scanner reports the oversized line", func() {
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given a cancelled context", t, func() {
		r := jsonl.NewReader()
		path := writeInput(t, `{"id":1}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := r.Each(ctx, path, func(model.FlightRecord) error { return nil })

		convey.Convey("Then iteration stops with the context error", func() {
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})
	})
}
