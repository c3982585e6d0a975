package debounce

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

const quiet = 30 * time.Millisecond

// collect reads every value emitted within the window.
func collect(d *Debouncer, window time.Duration) []string {
	var values []string
	deadline := time.After(window)
	for {
		select {
		case v, ok := <-d.Values():
			if !ok {
				return values
			}
			values = append(values, v)
		case <-deadline:
			return values
		}
	}
}

func TestDebouncer(t *testing.T) {
	Convey("Given a debouncer", t, func() {
		d := New(quiet)
		defer d.Stop()

		Convey("A rapid burst emits only the last value, once", func() {
			for _, v := range []string{"a", "al", "ali", "alie", "alien"} {
				d.Push(v)
			}
			So(collect(d, 10*quiet), ShouldResemble, []string{"alien"})
		})

		Convey("Each push restarts the quiet period", func() {
			d.Push("b")
			time.Sleep(quiet / 2)
			d.Push("ba")
			time.Sleep(quiet / 2)
			d.Push("bat")
			So(collect(d, 10*quiet), ShouldResemble, []string{"bat"})
		})

		Convey("Nothing is emitted when nothing was pushed", func() {
			So(collect(d, 5*quiet), ShouldBeEmpty)
		})

		Convey("Separate bursts emit separately", func() {
			d.Push("first")
			So(collect(d, 5*quiet), ShouldResemble, []string{"first"})
			d.Push("second")
			So(collect(d, 5*quiet), ShouldResemble, []string{"second"})
		})

		Convey("A lagging consumer only sees the newest settled value", func() {
			d.Push("old")
			time.Sleep(5 * quiet)
			d.Push("new")
			time.Sleep(5 * quiet)
			So(collect(d, 2*quiet), ShouldResemble, []string{"new"})
		})

		Convey("Cancel drops the pending value", func() {
			d.Push("alien")
			d.Cancel()
			So(collect(d, 5*quiet), ShouldBeEmpty)

			Convey("And later pushes still settle", func() {
				d.Push("aliens")
				So(collect(d, 5*quiet), ShouldResemble, []string{"aliens"})
			})
		})

		Convey("Cancel drops a settled value nobody received", func() {
			d.Push("alien")
			time.Sleep(5 * quiet)
			d.Cancel()
			So(collect(d, 2*quiet), ShouldBeEmpty)
		})

		Convey("Blank values are emitted like any other", func() {
			d.Push("x")
			d.Push("   ")
			So(collect(d, 10*quiet), ShouldResemble, []string{"   "})
		})
	})

	Convey("Stop discards a pending value and closes the channel", t, func() {
		d := New(quiet)
		d.Push("pending")
		d.Stop()

		v, ok := <-d.Values()
		So(ok, ShouldBeFalse)
		So(v, ShouldBeEmpty)

		Convey("Pushing after Stop is ignored", func() {
			So(func() { d.Push("late") }, ShouldNotPanic)
			So(func() { d.Stop() }, ShouldNotPanic)
		})
	})

	Convey("A non-positive quiet period falls back to the default", t, func() {
		So(New(0).quiet, ShouldEqual, DefaultQuiet)
	})
}
