// Package wardrobe ...
package wardrobe

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// ErrEmptyPool is returned by NewQuiz when there is nothing to ask about.
var ErrEmptyPool = errors.New("no items in the pool")

type Phase int

const (
	Unanswered Phase = iota
	Answered
	Finished
)

func (p Phase) String() string {
	switch p {
	case Unanswered:
		return "unanswered"
	case Answered:
		return "answered"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for _, phase := range []Phase{Unanswered, Answered, Finished} {
		if phase.String() == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Quiz walks a single player through one session of questions. It is driven by
// one goroutine at a time and is not safe for concurrent use.
type Quiz struct {
	logger  *zap.SugaredLogger
	rng     *rand.Rand
	catalog *Catalog
	size    int

	questions []*Item
	index     int
	score     int
	phase     Phase
	round     *Round
}

// Round is the state of the question currently on screen. A new Round is
// created every time the quiz moves to another question.
type Round struct {
	Num           int
	Item          *Item
	KindOptions   []string
	ColorOptions  []string
	SelectedKind  null.String
	SelectedColor null.String
	Answered      bool
	Correct       bool
	Final         bool
}

func NewDefaultQuiz(logger *zap.SugaredLogger, rng *rand.Rand, catalog *Catalog) (*Quiz, error) {
	return NewQuiz(logger, rng, catalog, 10)
}

func NewQuiz(logger *zap.SugaredLogger, rng *rand.Rand, catalog *Catalog, size int) (*Quiz, error) {
	if len(catalog.Items) == 0 {
		return nil, ErrEmptyPool
	}

	quiz := &Quiz{
		logger:  logger,
		rng:     rng,
		catalog: catalog,
		size:    size,
	}
	quiz.Restart()

	return quiz, nil
}

// Restart throws the current session away and draws a new one from the pool.
func (q *Quiz) Restart() {
	q.questions = InitSession(q.rng, q.catalog.Items, q.size)
	q.score = 0
	q.enter(0)

	q.logger.Infow("new session", "questions", len(q.questions), "pool", len(q.catalog.Items))
}

func (q *Quiz) enter(index int) {
	item := q.questions[index]

	q.index = index
	q.phase = Unanswered
	q.round = &Round{
		Num:          index + 1,
		Item:         item,
		KindOptions:  BuildOptions(q.rng, item.Kind, q.catalog.Kinds),
		ColorOptions: BuildOptions(q.rng, item.Color, q.catalog.Colors),
		Final:        index == len(q.questions)-1,
	}

	q.logger.Debugw("entered round", "num", q.round.Num, "src", item.Src)
}

func (q *Quiz) Phase() Phase {
	return q.phase
}

func (q *Quiz) Score() int {
	return q.score
}

func (q *Quiz) Index() int {
	return q.index
}

func (q *Quiz) Total() int {
	return len(q.questions)
}

// Questions returns a copy of the session's question order.
func (q *Quiz) Questions() []*Item {
	return slices.Clone(q.questions)
}

// CurrentRound returns nil once the quiz is finished.
func (q *Quiz) CurrentRound() *Round {
	if q.phase == Finished {
		return nil
	}
	return q.round
}

// SelectKind records the player's kind choice. Only labels among the round's
// KindOptions are accepted, and only before the round is answered.
func (q *Quiz) SelectKind(label string) bool {
	if !q.selectable(label, q.round.KindOptions) {
		q.logger.Debugw("kind selection ignored", "label", label, "phase", q.phase)
		return false
	}
	q.round.SelectedKind = null.StringFrom(label)
	return true
}

// SelectColor is SelectKind for the round's ColorOptions.
func (q *Quiz) SelectColor(label string) bool {
	if !q.selectable(label, q.round.ColorOptions) {
		q.logger.Debugw("color selection ignored", "label", label, "phase", q.phase)
		return false
	}
	q.round.SelectedColor = null.StringFrom(label)
	return true
}

func (q *Quiz) selectable(label string, options []string) bool {
	return q.phase == Unanswered && slices.Contains(options, label)
}

// Submit checks the current selections. It only counts once per round; an
// unset selection never matches.
func (q *Quiz) Submit() bool {
	if q.phase != Unanswered {
		q.logger.Debugw("submit ignored", "phase", q.phase)
		return false
	}

	r := q.round
	r.Correct = matches(r.SelectedKind, r.Item.Kind) && matches(r.SelectedColor, r.Item.Color)
	if r.Correct {
		q.score++
	}
	r.Answered = true
	q.phase = Answered

	q.logger.Infow("answer submitted",
		"num", r.Num,
		"kind", r.SelectedKind,
		"color", r.SelectedColor,
		"correct", r.Correct,
		"score", q.score,
	)

	return true
}

func matches(selected null.String, want string) bool {
	return selected.Valid && selected.String == want
}

// Advance moves on to the next question, or finishes the quiz after the last
// one. It is a no-op until the current round has been answered.
func (q *Quiz) Advance() bool {
	if q.phase != Answered {
		q.logger.Debugw("advance ignored", "phase", q.phase)
		return false
	}

	if q.index+1 < len(q.questions) {
		q.enter(q.index + 1)
		return true
	}

	q.phase = Finished
	q.logger.Infow("quiz finished", "score", q.score, "total", len(q.questions))

	return true
}
