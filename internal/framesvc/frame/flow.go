package frame

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/avvvet/tarot-frames/internal/framesvc/models"
)

//go:embed frame.html
var frameHTML string

type Step string

const (
	StepStart   Step = "start"
	StepSelect  Step = "select"
	StepReveal  Step = "reveal"
	StepReading Step = "reading"
	StepFailure Step = "failure"
)

const (
	ActionPost = "post"
	ActionLink = "link"
	ActionTx   = "tx"
)

var ErrUnknownStep = errors.New("unknown frame step")

type Button struct {
	Label  string
	Action string
	Target string
}

// View is everything a frame document shows: the image, the text mirrored into the
// page body and up to four buttons.
type View struct {
	Title       string
	Image       string
	AspectRatio string
	PostURL     string
	Heading     string
	Lines       []string
	Buttons     []Button
}

// State is the per-request input of a step.
type State struct {
	TokenID int
	Card    *models.Card
	Price   string
	Message string
}

type RenderFunc func(f *Flow, st State) View

// Flow maps each step of the reading to the view it renders.
type Flow struct {
	baseURL  string
	aboutURL string
	steps    map[Step]RenderFunc
	tmpl     *template.Template
}

func NewFlow(baseURL, aboutURL string) *Flow {
	f := &Flow{
		baseURL:  strings.TrimRight(baseURL, "/"),
		aboutURL: aboutURL,
		steps:    map[Step]RenderFunc{},
		tmpl: template.Must(template.New("frame").Funcs(template.FuncMap{
			"inc": func(i int) int { return i + 1 },
		}).Parse(frameHTML)),
	}

	f.Handle(StepStart, startView)
	f.Handle(StepSelect, selectView)
	f.Handle(StepReveal, revealView)
	f.Handle(StepReading, readingView)
	f.Handle(StepFailure, failureView)

	return f
}

// Handle registers or replaces the render function of a step.
func (f *Flow) Handle(step Step, fn RenderFunc) {
	f.steps[step] = fn
}

func (f *Flow) URL(path string, args ...interface{}) string {
	if len(args) > 0 {
		path = fmt.Sprintf(path, args...)
	}
	return f.baseURL + path
}

func (f *Flow) View(step Step, st State) (View, error) {
	fn, ok := f.steps[step]
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}

	v := fn(f, st)
	if v.AspectRatio == "" {
		v.AspectRatio = "1:1"
	}
	if len(v.Buttons) > 4 {
		v.Buttons = v.Buttons[:4]
	}
	return v, nil
}

func (f *Flow) Render(w io.Writer, step Step, st State) error {
	v, err := f.View(step, st)
	if err != nil {
		return err
	}

	if rw, ok := w.(http.ResponseWriter); ok {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	}

	return f.tmpl.Execute(w, v)
}

func startView(f *Flow, _ State) View {
	return View{
		Title:   "NFTarot",
		Image:   f.URL("/api/welcome-img"),
		PostURL: f.URL("/api/card-select"),
		Heading: "OnChain Tarot Reading",
		Lines: []string{
			"with NFTarot",
			"Leveraging energy exchange with the blockchain to foster a moment of reflection & guidance.",
		},
		Buttons: []Button{
			{Label: "Begin Reading", Action: ActionPost, Target: f.URL("/api/card-select")},
			{Label: "Learn More", Action: ActionLink, Target: f.aboutURL},
		},
	}
}

func selectView(f *Flow, st State) View {
	lines := []string{"Take a deep breath. Set your intention. When you're ready, mint your reading."}
	if st.Price != "" {
		lines = append(lines, fmt.Sprintf("Mint price: %s ETH", st.Price))
	}

	return View{
		Title:   "NFTarot",
		Image:   f.URL("/intention.png"),
		PostURL: f.URL("/api/card-reveal/%d", st.TokenID),
		Heading: "Set your intention",
		Lines:   lines,
		Buttons: []Button{
			{Label: "Go Back", Action: ActionPost, Target: f.URL("/api/")},
			{Label: "Mint and Reveal", Action: ActionTx, Target: f.URL("/api/mint?tokenId=%d", st.TokenID)},
		},
	}
}

func revealView(f *Flow, st State) View {
	if st.Card == nil {
		return failureView(f, State{Message: "Your card could not be found."})
	}

	return View{
		Title:   "NFTarot: " + st.Card.CardName,
		Image:   st.Card.ImageURL,
		PostURL: f.URL("/api/"),
		Heading: st.Card.CardName,
		Lines:   []string{st.Card.CardReadMain},
		Buttons: []Button{
			{Label: "Share Reading", Action: ActionLink, Target: f.ShareURL(st.Card.Index)},
			{Label: "Begin Again", Action: ActionPost, Target: f.URL("/api/")},
		},
	}
}

func readingView(f *Flow, st State) View {
	if st.Card == nil {
		return failureView(f, State{Message: "This reading does not exist."})
	}

	return View{
		Title:   "NFTarot: " + st.Card.CardName,
		Image:   st.Card.ImageURL,
		PostURL: f.URL("/api/"),
		Heading: st.Card.CardName,
		Lines:   []string{st.Card.CardReadMain},
		Buttons: []Button{
			{Label: "Get Your Reading", Action: ActionPost, Target: f.URL("/api/")},
		},
	}
}

func failureView(f *Flow, st State) View {
	msg := st.Message
	if msg == "" {
		msg = "Something went wrong."
	}

	return View{
		Title:   "NFTarot",
		Image:   f.URL("/card-back.png"),
		PostURL: f.URL("/api/"),
		Heading: "The cards are unclear",
		Lines:   []string{msg},
		Buttons: []Button{
			{Label: "Begin Again", Action: ActionPost, Target: f.URL("/api/")},
		},
	}
}
