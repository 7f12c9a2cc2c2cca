package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skyhook/neotrack/internal/neows"
)

// stubFetcher records the queries it receives and replays canned results.
type stubFetcher struct {
	feedRange  *neows.DateRange
	feedFields []string
	feedErr    error

	lookupID     *string
	lookupFields []string
	lookupErr    error
}

func (s *stubFetcher) FetchFeed(_ context.Context, r neows.DateRange) ([]string, error) {
	s.feedRange = &r
	return s.feedFields, s.feedErr
}

func (s *stubFetcher) FetchNeo(_ context.Context, id string) ([]string, error) {
	s.lookupID = &id
	return s.lookupFields, s.lookupErr
}

func newTestModel(fetcher neows.Fetcher) Model {
	return New(Options{
		Context: context.Background(),
		Fetcher: fetcher,
		// No typewriter pacing in tests.
		TypingDelay: 0,
	})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enterMsg = tea.KeyMsg{Type: tea.KeyEnter}

// step applies one message and returns the updated model, discarding
// any command.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return out
}

// stepCmd applies one message and also returns the command it produced.
func stepCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return out, cmd
}

func countLines(m Model, want string) int {
	n := 0
	for _, line := range m.lines {
		if line == want {
			n++
		}
	}
	return n
}

func TestMenuRetriesUntilValidKey(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	invalid := []string{"x", "9", "q", "!"}
	for _, key := range invalid {
		m = step(t, m, keyMsg(key))
	}
	if got := countLines(m, invalidOptionMsg); got != len(invalid) {
		t.Fatalf("retry messages = %d, want %d", got, len(invalid))
	}
	if m.phase != phaseMenu {
		t.Fatalf("phase = %v, want phaseMenu after invalid keys", m.phase)
	}

	m = step(t, m, keyMsg("1"))
	if got := countLines(m, "You selected 1"); got != 1 {
		t.Fatalf("selection echo count = %d, want 1", got)
	}
	if got := countLines(m, invalidOptionMsg); got != len(invalid) {
		t.Fatalf("retry messages after selection = %d, want %d", got, len(invalid))
	}
	if m.phase != phaseFeedStart {
		t.Fatalf("phase = %v, want phaseFeedStart", m.phase)
	}
	if got := countLines(m, promptStartDate); got != 1 {
		t.Fatalf("start date prompt count = %d, want 1", got)
	}
}

func TestMenuIgnoresNonRuneKeysAsInvalid(t *testing.T) {
	m := newTestModel(&stubFetcher{})
	m = step(t, m, enterMsg)
	if got := countLines(m, invalidOptionMsg); got != 1 {
		t.Fatalf("retry messages = %d, want 1 for enter key", got)
	}
}

// runFeedFlow selects the feed option, types both dates, and returns
// the model plus the fetch command produced by the final enter.
func runFeedFlow(t *testing.T, m Model, start, end string) (Model, tea.Cmd) {
	t.Helper()
	m = step(t, m, keyMsg("1"))
	if start != "" {
		m = step(t, m, keyMsg(start))
	}
	m = step(t, m, enterMsg)
	if m.phase != phaseFeedEnd {
		t.Fatalf("phase = %v, want phaseFeedEnd", m.phase)
	}
	if got := countLines(m, promptEndDate); got != 1 {
		t.Fatalf("end date prompt count = %d, want 1", got)
	}
	if end != "" {
		m = step(t, m, keyMsg(end))
	}
	return stepCmd(t, m, enterMsg)
}

func TestFeedFlow_BlankBoundsLeaveRangeUnset(t *testing.T) {
	fetcher := &stubFetcher{feedFields: []string{"links", "element_count", "near_earth_objects"}}
	m, cmd := runFeedFlow(t, newTestModel(fetcher), "", "")
	if cmd == nil {
		t.Fatal("final enter should produce a fetch command")
	}

	msg := cmd()
	if fetcher.feedRange == nil {
		t.Fatal("fetcher was never called")
	}
	if *fetcher.feedRange != (neows.DateRange{}) {
		t.Fatalf("range = %+v, want both bounds unset", *fetcher.feedRange)
	}

	m = step(t, m, msg)
	if got := countLines(m, fetchedDataMsg); got != 1 {
		t.Fatalf("%q count = %d, want 1", fetchedDataMsg, got)
	}
	if got := countLines(m, "links|element_count|near_earth_objects"); got != 1 {
		t.Fatalf("field list missing from transcript: %q", m.lines)
	}
	if m.phase != phaseDone {
		t.Fatalf("phase = %v, want phaseDone", m.phase)
	}
}

func TestFeedFlow_InvalidStartValidEnd(t *testing.T) {
	fetcher := &stubFetcher{feedFields: []string{"links"}}
	_, cmd := runFeedFlow(t, newTestModel(fetcher), "abcd", "2024-01-01")
	if cmd == nil {
		t.Fatal("final enter should produce a fetch command")
	}
	cmd()

	if fetcher.feedRange == nil {
		t.Fatal("fetcher was never called")
	}
	want := neows.DateRange{Start: "", End: "2024-01-01"}
	if *fetcher.feedRange != want {
		t.Fatalf("range = %+v, want %+v", *fetcher.feedRange, want)
	}
}

func TestFeedFlow_ImpossibleDateDegradesToUnset(t *testing.T) {
	fetcher := &stubFetcher{feedFields: []string{"links"}}
	m, cmd := runFeedFlow(t, newTestModel(fetcher), "2024-02-30", "")
	cmd()

	if fetcher.feedRange.Start != "" {
		t.Fatalf("start = %q, want unset for impossible date", fetcher.feedRange.Start)
	}
	// Silent degrade: no error line in the transcript.
	if got := countLines(m, invalidOptionMsg); got != 0 {
		t.Fatalf("unexpected retry message for a date input")
	}
}

func runLookupFlow(t *testing.T, m Model, id string) (Model, tea.Cmd) {
	t.Helper()
	m = step(t, m, keyMsg("2"))
	if m.phase != phaseLookupID {
		t.Fatalf("phase = %v, want phaseLookupID", m.phase)
	}
	if got := countLines(m, promptNeoID); got != 1 {
		t.Fatalf("id prompt count = %d, want 1", got)
	}
	if id != "" {
		m = step(t, m, keyMsg(id))
	}
	return stepCmd(t, m, enterMsg)
}

func TestLookupFlow_Success(t *testing.T) {
	fetcher := &stubFetcher{lookupFields: []string{"id", "name"}}
	m, cmd := runLookupFlow(t, newTestModel(fetcher), "2000433")

	msg := cmd()
	if fetcher.lookupID == nil || *fetcher.lookupID != "2000433" {
		t.Fatalf("lookup id = %v, want 2000433", fetcher.lookupID)
	}

	m = step(t, m, msg)
	if got := countLines(m, fetchedDataMsg); got != 1 {
		t.Fatalf("%q count = %d, want 1", fetchedDataMsg, got)
	}
	if got := countLines(m, "id|name"); got != 1 {
		t.Fatalf("field list missing from transcript: %q", m.lines)
	}
}

func TestLookupFlow_NotFound(t *testing.T) {
	fetcher := &stubFetcher{lookupErr: neows.ErrNotFound}
	m, cmd := runLookupFlow(t, newTestModel(fetcher), "99999999")

	m = step(t, m, cmd())
	if got := countLines(m, notFoundMsg); got != 1 {
		t.Fatalf("%q count = %d, want 1", notFoundMsg, got)
	}
	if got := countLines(m, fetchedDataMsg); got != 0 {
		t.Fatalf("%q must not appear for a missing NEO", fetchedDataMsg)
	}
	if m.phase != phaseDone {
		t.Fatalf("phase = %v, want phaseDone (not-found completes the flow)", m.phase)
	}
	if m.err != nil {
		t.Fatalf("not-found must not be fatal, got %v", m.err)
	}
}

func TestLookupFlow_EmptyIDPassesThrough(t *testing.T) {
	fetcher := &stubFetcher{lookupFields: []string{"id"}}
	_, cmd := runLookupFlow(t, newTestModel(fetcher), "")
	cmd()

	if fetcher.lookupID == nil || *fetcher.lookupID != "" {
		t.Fatalf("lookup id = %v, want empty string passed through", fetcher.lookupID)
	}
}

func TestTransportErrorIsFatal(t *testing.T) {
	fetcher := &stubFetcher{lookupErr: errors.New("connection refused")}
	m, cmd := runLookupFlow(t, newTestModel(fetcher), "2000433")

	var quit tea.Cmd
	m, quit = stepCmd(t, m, cmd())
	if m.err == nil {
		t.Fatal("transport failure must set the fatal error")
	}
	if !strings.Contains(m.err.Error(), "request failed") {
		t.Fatalf("err = %v, want request failed wrap", m.err)
	}
	if quit == nil {
		t.Fatal("transport failure must quit the program")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Fatal("command after transport failure should be tea.Quit")
	}
}

func TestFeedFlow_TransportErrorIsFatal(t *testing.T) {
	fetcher := &stubFetcher{feedErr: errors.New("timeout")}
	m, cmd := runFeedFlow(t, newTestModel(fetcher), "", "")

	m, quit := stepCmd(t, m, cmd())
	if m.err == nil || quit == nil {
		t.Fatalf("feed fetch failure must be fatal, err=%v quit=%v", m.err, quit)
	}
}

func TestDoneQuitsOnAnyKey(t *testing.T) {
	fetcher := &stubFetcher{lookupFields: []string{"id"}}
	m, cmd := runLookupFlow(t, newTestModel(fetcher), "2000433")
	m = step(t, m, cmd())

	_, quit := stepCmd(t, m, keyMsg("z"))
	if quit == nil {
		t.Fatal("keypress on the final screen should quit")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestTypewriter(t *testing.T) {
	m := New(Options{Fetcher: &stubFetcher{}, TypingDelay: time.Millisecond})
	if m.titleShown != 0 {
		t.Fatalf("titleShown = %d, want 0 before ticks", m.titleShown)
	}
	if m.Init() == nil {
		t.Fatal("Init should schedule the first type tick")
	}

	for i := 0; i < len(titleRunes); i++ {
		m = step(t, m, typeTickMsg(time.Now()))
	}
	if m.titleShown != len(titleRunes) {
		t.Fatalf("titleShown = %d, want %d", m.titleShown, len(titleRunes))
	}
	// Extra ticks past the end are harmless.
	m = step(t, m, typeTickMsg(time.Now()))
	if m.titleShown != len(titleRunes) {
		t.Fatalf("titleShown overran the title")
	}
}

func TestTypingDelayZeroSkipsPacing(t *testing.T) {
	m := newTestModel(&stubFetcher{})
	if m.titleShown != len(titleRunes) {
		t.Fatalf("titleShown = %d, want full title with zero delay", m.titleShown)
	}
	if m.Init() != nil {
		t.Fatal("Init should not schedule ticks with zero delay")
	}
}

func TestViewShowsWelcomeScreen(t *testing.T) {
	m := newTestModel(&stubFetcher{})
	view := m.View()

	for _, want := range []string{
		titleText,
		optionsHeading,
		"1) Fetch NEO feed",
		"2) Lookup NEO by id",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestRunRejectsNilFetcher(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Fatal("Run should fail without a fetcher")
	}
}
