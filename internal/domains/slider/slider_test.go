package slider

import (
	"strings"
	"testing"
	"time"

	"wedding-site/internal/infrastructure/render"
	"wedding-site/pkg/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><body>
<div id="slideshow"><a id="prev" class="prev-arrow"></a><a id="next" class="next-arrow"></a></div>
<div id="dotsMemories"></div>
</body></html>`

var memoriesElements = Elements{
	Container:  "slideshow",
	Dots:       "dotsMemories",
	SlideClass: "mySlides",
	DotClass:   "dot",
}

type fixture struct {
	doc    *render.Document
	sched  *scheduler.Manual
	slider *Slider
}

func newFixture(t *testing.T, count int) *fixture {
	t.Helper()
	doc, err := render.ParseDocument(strings.NewReader(page))
	require.NoError(t, err)

	sched := scheduler.NewManual()
	s := New("memories", Config{Folder: "images/memories", Count: count}, memoriesElements, doc, sched, DefaultOptions())
	return &fixture{doc: doc, sched: sched, slider: s}
}

func newBuiltFixture(t *testing.T, count int) *fixture {
	t.Helper()
	f := newFixture(t, count)
	require.True(t, f.slider.Build())
	return f
}

// assertOnlyActive checks that exactly position n is visible and active.
func (f *fixture) assertOnlyActive(t *testing.T, n int) {
	t.Helper()
	slides := f.slider.SlideIDs()
	dots := f.slider.DotIDs()
	require.Len(t, dots, len(slides))

	visible, active := 0, 0
	for i := range slides {
		if f.doc.Visible(slides[i]) {
			visible++
			assert.Equal(t, n, i+1, "visible slide")
		}
		if f.doc.HasClass(dots[i], "active-dot") {
			active++
			assert.Equal(t, n, i+1, "active dot")
		}
	}
	assert.Equal(t, 1, visible)
	assert.Equal(t, 1, active)
	assert.Equal(t, n, f.slider.State().CurrentIndex)
}

func (f *fixture) cooldown() {
	f.sched.Advance(DefaultOptions().Cooldown)
}

// ========================================
// BUILD
// ========================================

func TestBuild_CreatesSlidesAndDots(t *testing.T) {
	f := newBuiltFixture(t, 5)

	slides := f.slider.SlideIDs()
	require.Len(t, slides, 5)
	assert.Equal(t, "slideshow-slide-01", slides[0])

	// slides go before the prev arrow, arrows stay last
	children := f.doc.ChildIDs("slideshow", "")
	assert.Equal(t, append(slides, "prev", "next"), children)
	assert.Equal(t, slides, f.doc.ChildIDs("slideshow", "mySlides"))
	assert.True(t, f.doc.HasClass(slides[0], "fade-slide"))

	assert.Equal(t, 5, f.doc.Children("dotsMemories"))
	assert.Equal(t, f.slider.DotIDs(), f.doc.ChildIDs("dotsMemories", "dot"))

	f.assertOnlyActive(t, 1)

	assert.Equal(t, 2, f.doc.ListenerCount("slideshow"))
	for _, id := range f.slider.DotIDs() {
		assert.Equal(t, 1, f.doc.ListenerCount(id))
	}
}

func TestBuild_ImagePaths(t *testing.T) {
	f := newFixture(t, 12)

	assert.Equal(t, "images/memories/01.jpg", f.slider.ImagePath(1))
	assert.Equal(t, "images/memories/12.jpg", f.slider.ImagePath(12))

	require.True(t, f.slider.Build())

	var buf strings.Builder
	require.NoError(t, f.doc.Render(&buf))
	assert.Contains(t, buf.String(), `<img loading="lazy" src="images/memories/07.jpg"/>`)
}

func TestBuild_DisabledSliderRendersNothing(t *testing.T) {
	f := newFixture(t, 0)

	assert.False(t, f.slider.Build())
	assert.Equal(t, []string{"prev", "next"}, f.doc.ChildIDs("slideshow", ""))
	assert.Equal(t, 0, f.doc.Children("dotsMemories"))
	assert.Equal(t, 0, f.doc.ListenerCount("slideshow"))
	assert.False(t, f.slider.State().Built)
}

func TestBuild_MissingContainerIsSkipped(t *testing.T) {
	doc, err := render.ParseDocument(strings.NewReader(page))
	require.NoError(t, err)

	els := memoriesElements
	els.Dots = "dotsPreshoot"
	s := New("preshoot", Config{Folder: "images/preshoot", Count: 3}, els, doc, scheduler.NewManual(), DefaultOptions())

	assert.False(t, s.Build())
	assert.Equal(t, 0, doc.ListenerCount("slideshow"))
	assert.Equal(t, []string{"prev", "next"}, doc.ChildIDs("slideshow", ""))
}

func TestBuild_TwiceDuplicatesListeners(t *testing.T) {
	f := newBuiltFixture(t, 3)
	require.True(t, f.slider.Build())

	assert.Len(t, f.doc.ChildIDs("slideshow", "mySlides"), 3)
	assert.Equal(t, 3, f.doc.Children("dotsMemories"))
	assert.Equal(t, 4, f.doc.ListenerCount("slideshow"))
}

// ========================================
// SHOW / NAVIGATE
// ========================================

func TestShow_Wraparound(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.Show(0)
	f.assertOnlyActive(t, 5)
	f.cooldown()

	f.slider.Show(6)
	f.assertOnlyActive(t, 1)
	f.cooldown()

	f.slider.Show(-3)
	f.assertOnlyActive(t, 5)
	f.cooldown()

	f.slider.Show(3)
	f.assertOnlyActive(t, 3)
}

func TestShow_NoSlidesIsNoop(t *testing.T) {
	f := newFixture(t, 5) // not built

	f.slider.Show(2)
	assert.Equal(t, 1, f.slider.State().CurrentIndex)
	assert.False(t, f.slider.State().Transitioning)
	assert.Equal(t, 0, f.sched.Pending())
}

func TestNavigate_WrapsForward(t *testing.T) {
	f := newBuiltFixture(t, 5)
	f.slider.GoToSlide(5)
	f.cooldown()

	f.slider.Navigate(1)
	f.assertOnlyActive(t, 1)
}

func TestNavigate_WrapsBackward(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.Navigate(-1)
	f.assertOnlyActive(t, 5)
}

func TestNavigate_DroppedWhileTransitioning(t *testing.T) {
	f := newBuiltFixture(t, 5)

	for i := 0; i < 10; i++ {
		f.slider.Navigate(1)
	}
	f.assertOnlyActive(t, 2)
	assert.True(t, f.slider.State().Transitioning)

	f.slider.GoToSlide(4)
	f.assertOnlyActive(t, 2)

	f.cooldown()
	assert.False(t, f.slider.State().Transitioning)

	for i := 0; i < 10; i++ {
		f.slider.Navigate(1)
	}
	f.assertOnlyActive(t, 3)
}

func TestShow_CooldownRearmsAutoPlay(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.Navigate(1)
	assert.False(t, f.slider.State().AutoPlayPending)

	f.sched.Advance(99 * time.Millisecond)
	assert.True(t, f.slider.State().Transitioning)
	assert.False(t, f.slider.State().AutoPlayPending)

	f.sched.Advance(time.Millisecond)
	assert.False(t, f.slider.State().Transitioning)
	assert.True(t, f.slider.State().AutoPlayPending)
	assert.Equal(t, 1, f.sched.Pending())

	// autoplay interval runs from the end of the cooldown
	f.sched.Advance(3999 * time.Millisecond)
	f.assertOnlyActive(t, 2)
	f.sched.Advance(time.Millisecond)
	f.assertOnlyActive(t, 3)
}

func TestOnChange_NotifiedOnAcceptedShow(t *testing.T) {
	f := newBuiltFixture(t, 3)
	var got []int
	f.slider.OnChange(func(st State) { got = append(got, st.CurrentIndex) })

	f.slider.Navigate(1)
	f.slider.Navigate(1) // dropped
	f.cooldown()
	f.slider.GoToSlide(3)

	assert.Equal(t, []int{2, 3}, got)
}

// ========================================
// AUTOPLAY
// ========================================

func TestStartAutoPlay_AtMostOnePending(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.StartAutoPlay()
	f.slider.StartAutoPlay()
	assert.Equal(t, 1, f.sched.Pending())

	f.sched.Advance(4000 * time.Millisecond)
	f.assertOnlyActive(t, 2) // one advance, not two
}

func TestStopAutoPlay_CancelsPending(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.StartAutoPlay()
	f.slider.StopAutoPlay()
	f.slider.StopAutoPlay()

	assert.Equal(t, 0, f.sched.Pending())
	f.sched.Advance(10 * time.Second)
	f.assertOnlyActive(t, 1)
}

func TestAutoPlay_CyclesWithWraparound(t *testing.T) {
	f := newBuiltFixture(t, 3)
	f.slider.StartAutoPlay()

	// each step: 4000ms interval + 100ms cooldown before re-arming
	f.sched.Advance(4000 * time.Millisecond)
	f.assertOnlyActive(t, 2)
	f.sched.Advance(4100 * time.Millisecond)
	f.assertOnlyActive(t, 3)
	f.sched.Advance(4100 * time.Millisecond)
	f.assertOnlyActive(t, 1)
}

// ========================================
// TOUCH
// ========================================

func TestTouch_SwipeLeftNavigatesForward(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.TouchStart(300)
	f.slider.TouchEnd(200)

	f.assertOnlyActive(t, 2)
	assert.True(t, f.slider.State().AutoPlayPending)
}

func TestTouch_SwipeRightNavigatesBackward(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.TouchStart(100)
	f.slider.TouchEnd(220)

	f.assertOnlyActive(t, 5)
}

func TestTouch_ShortSwipeOnlyResumesAutoPlay(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.TouchStart(300)
	f.slider.TouchEnd(280)

	f.assertOnlyActive(t, 1)
	assert.True(t, f.slider.State().AutoPlayPending)
	assert.Equal(t, 1, f.sched.Pending())
}

func TestTouch_ExactThresholdDoesNotNavigate(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.TouchStart(300)
	f.slider.TouchEnd(250)

	f.assertOnlyActive(t, 1)
}

func TestTouch_StartSuspendsAutoPlay(t *testing.T) {
	f := newBuiltFixture(t, 5)
	f.slider.StartAutoPlay()

	f.slider.TouchStart(300)
	assert.False(t, f.slider.State().AutoPlayPending)
	assert.Equal(t, 0, f.sched.Pending())
}

func TestTouch_EndDuringTransitionDoesNotNavigate(t *testing.T) {
	f := newBuiltFixture(t, 5)

	f.slider.Navigate(1)
	f.slider.TouchStart(300)
	f.slider.TouchEnd(100)

	f.assertOnlyActive(t, 2)
	assert.True(t, f.slider.State().AutoPlayPending)

	// cooldown replaces the pending advance instead of adding one
	f.cooldown()
	assert.Equal(t, 1, f.sched.Pending())
}

func TestTouch_DispatchedThroughDocument(t *testing.T) {
	f := newBuiltFixture(t, 5)

	require.NoError(t, f.doc.Dispatch("slideshow", render.Event{Kind: render.EventTouchStart, X: 300}))
	require.NoError(t, f.doc.Dispatch("slideshow", render.Event{Kind: render.EventTouchEnd, X: 200}))

	f.assertOnlyActive(t, 2)
}

func TestDotClick_GoesToSlide(t *testing.T) {
	f := newBuiltFixture(t, 5)

	require.NoError(t, f.doc.Dispatch(f.slider.DotIDs()[3], render.Event{Kind: render.EventClick}))
	f.assertOnlyActive(t, 4)

	// gated by the transition lock like any navigation
	require.NoError(t, f.doc.Dispatch(f.slider.DotIDs()[0], render.Event{Kind: render.EventClick}))
	f.assertOnlyActive(t, 4)
}

// ========================================
// CONFIG / REGISTRY
// ========================================

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{Count: 0}.Validate())
	assert.NoError(t, Config{Folder: "images/memories", Count: 3}.Validate())
	assert.Error(t, Config{Folder: "images/memories", Count: -1}.Validate())
	assert.Error(t, Config{Count: 2}.Validate())
}

func TestRegistry(t *testing.T) {
	f := newBuiltFixture(t, 5)
	r := NewRegistry()
	r.Register(f.slider)

	got, err := r.Get("memories")
	require.NoError(t, err)
	assert.Same(t, f.slider, got)

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, ErrSliderNotFound)

	r.Navigate("memories", 1)
	r.Navigate("nope", 1)
	f.assertOnlyActive(t, 2)

	assert.Equal(t, []string{"memories"}, r.Keys())
	states := r.States()
	require.Len(t, states, 1)
	assert.Equal(t, 2, states[0].CurrentIndex)
	assert.True(t, states[0].Built)
}
