// Package play is the screen where a problem set is worked through until
// every problem is mastered.
package play

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/problemgen"
	"github.com/abhisek/blockmath/internal/queue"
	"github.com/abhisek/blockmath/internal/router"
	"github.com/abhisek/blockmath/internal/screen"
	"github.com/abhisek/blockmath/internal/screens/summary"
	"github.com/abhisek/blockmath/internal/session"
	"github.com/abhisek/blockmath/internal/store"
	"github.com/abhisek/blockmath/internal/ui/components"
	"github.com/abhisek/blockmath/internal/ui/layout"
)

// generateTimeout bounds problem generation, which may call an LLM.
const generateTimeout = 90 * time.Second

// Deps are the collaborators a play session needs. Only Generator is
// required.
type Deps struct {
	Generator problemgen.Generator
	Request   problemgen.Request
	Manager   *queue.Manager
	Sessions  store.SessionRepo
	Blocks    *blocks.Service
	Diagnosis *diagnosis.Service
}

// feedback is the result of the last answer, shown until a key is pressed.
type feedback struct {
	correct  bool
	given    string
	want     string
	points   int
	mastered string
	reason   string // diagnosis label for a wrong answer
	awards   []blocks.Award
	summary  *queue.SessionSummary
}

// PlayScreen implements screen.Screen for an active session.
type PlayScreen struct {
	deps        Deps
	sess        *session.Session
	input       components.TextInput
	choices     components.MultiChoice
	feedback    *feedback
	confirmQuit bool
	hint        string
	errMsg      string

	// masteredQ is set by the session observer while an answer is graded.
	masteredQ string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a PlayScreen. Problems are generated when the screen starts.
func New(deps Deps) *PlayScreen {
	if deps.Request.Count == 0 {
		deps.Request = problemgen.DefaultRequest()
	}
	return &PlayScreen{deps: deps}
}

func (s *PlayScreen) Init() tea.Cmd {
	return s.generate()
}

func (s *PlayScreen) Title() string {
	return "Play"
}

// Status shows score and blocks in the header.
func (s *PlayScreen) Status() string {
	if s.sess == nil {
		return ""
	}
	st := s.sess.State()
	return fmt.Sprintf("★ %d   ▣ %d", st.Score, st.BlocksAwarded)
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep playing"},
		}
	case s.sess == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.feedback != nil:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
			{Key: "Ctrl+R", Description: "Restart"},
		}
	case s.choiceMode():
		return []layout.KeyHint{
			{Key: "1-9", Description: "Pick"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+R", Description: "Restart"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemsReadyMsg:
		return s.handleReady(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.sess != nil && s.feedback == nil && !s.confirmQuit && !s.choiceMode() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) generate() tea.Cmd {
	gen, req := s.deps.Generator, s.deps.Request
	return func() tea.Msg {
		if gen == nil {
			return problemsReadyMsg{Err: errors.New("no problem generator configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		specs, err := gen.Generate(ctx, req)
		return problemsReadyMsg{Specs: specs, Err: err}
	}
}

func (s *PlayScreen) handleReady(msg problemsReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	sess, err := session.New(msg.Specs,
		session.WithManager(s.deps.Manager),
		session.WithBlocks(s.deps.Blocks),
		session.WithStore(s.deps.Sessions),
		session.WithDiagnosis(s.deps.Diagnosis),
		session.WithObserver(session.Hooks{Mastered: s.onMastered}),
	)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.sess = sess
	return s, s.prepare()
}

func (s *PlayScreen) onMastered(ev session.MasteredEvent) {
	if e := s.sess.State().Entry(ev.ProblemID); e != nil {
		s.masteredQ = e.Spec.Question
	}
}

// prepare sets up the answer widget for the current problem.
func (s *PlayScreen) prepare() tea.Cmd {
	s.hint = ""
	cur := s.sess.Current()
	if cur == nil {
		return nil
	}
	if len(cur.Choices) > 0 {
		opts := make([]string, len(cur.Choices))
		for i, c := range cur.Choices {
			opts[i] = c.String()
		}
		s.choices = components.NewMultiChoice(opts)
		return nil
	}
	s.input = components.NewTextInput("Type your answer...", cur.Answer.Kind() == queue.KindNumber, 24)
	return s.input.Init()
}

func (s *PlayScreen) choiceMode() bool {
	if s.sess == nil {
		return false
	}
	cur := s.sess.Current()
	return cur != nil && len(cur.Choices) > 0
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.sess == nil {
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "ctrl+r":
		return s.restart()
	}

	if s.feedback != nil {
		return s.handleFeedbackKey()
	}

	if s.choiceMode() {
		var picked int
		s.choices, picked = s.choices.Update(msg)
		if picked >= 0 {
			return s.submit(s.sess.Current().Choices[picked])
		}
		return s, nil
	}

	if key == "enter" {
		cur := s.sess.Current()
		ans, err := problemgen.ParseInput(s.input.Value(), cur.Answer.Kind())
		if err != nil {
			s.hint = inputHint(err)
			return s, nil
		}
		return s.submit(ans)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PlayScreen) handleFeedbackKey() (screen.Screen, tea.Cmd) {
	fb := s.feedback
	if fb.summary != nil {
		deps := s.deps
		next := summary.New(fb.summary, s.sess.Awards(),
			summary.WithDiagnoses(s.sess.Diagnoses()),
			summary.WithPlayAgain(func() screen.Screen { return New(deps) }))
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	s.feedback = nil
	return s, s.prepare()
}

func (s *PlayScreen) submit(ans queue.Answer) (screen.Screen, tea.Cmd) {
	cur := *s.sess.Current()
	s.masteredQ = ""

	out, err := s.sess.Submit(context.Background(), ans)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.feedback = &feedback{
		correct:  out.Correct,
		given:    ans.String(),
		want:     cur.Answer.String(),
		points:   out.Points,
		mastered: s.masteredQ,
		awards:   out.Awards,
		reason:   diagnosisLabel(out.Diagnosis),
		summary:  out.Summary,
	}
	return s, nil
}

func diagnosisLabel(r *diagnosis.Result) string {
	if r == nil {
		return ""
	}
	return r.Label()
}

func (s *PlayScreen) restart() (screen.Screen, tea.Cmd) {
	if err := s.sess.Reset(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.feedback = nil
	s.confirmQuit = false
	return s, s.prepare()
}

func inputHint(err error) string {
	if errors.Is(err, problemgen.ErrEmptyInput) {
		return "Type an answer first"
	}
	return "That doesn't look like a number"
}
