package wardrobe

import "github.com/volatiletech/null/v8"

// View is everything a presentation layer needs to draw the quiz.
type View struct {
	Phase Phase `json:"phase"`
	Index int   `json:"index"`
	Total int   `json:"total"`
	Score int   `json:"score"`

	Image         string      `json:"image,omitempty"`
	KindOptions   []string    `json:"kindOptions,omitempty"`
	ColorOptions  []string    `json:"colorOptions,omitempty"`
	SelectedKind  null.String `json:"selectedKind"`
	SelectedColor null.String `json:"selectedColor"`
	Answered      bool        `json:"answered"`
	Final         bool        `json:"final"`

	// Only set once the round has been answered.
	CorrectKind  null.String `json:"correctKind"`
	CorrectColor null.String `json:"correctColor"`
	LastCorrect  null.Bool   `json:"lastCorrect"`
}

func (q *Quiz) View() View {
	v := View{
		Phase: q.phase,
		Index: q.index,
		Total: len(q.questions),
		Score: q.score,
	}

	if q.phase == Finished {
		v.Index = len(q.questions)
		return v
	}

	r := q.round
	v.Image = r.Item.Src
	v.KindOptions = append([]string(nil), r.KindOptions...)
	v.ColorOptions = append([]string(nil), r.ColorOptions...)
	v.SelectedKind = r.SelectedKind
	v.SelectedColor = r.SelectedColor
	v.Answered = r.Answered
	v.Final = r.Final

	if r.Answered {
		v.CorrectKind = null.StringFrom(r.Item.Kind)
		v.CorrectColor = null.StringFrom(r.Item.Color)
		v.LastCorrect = null.BoolFrom(r.Correct)
	}

	return v
}
