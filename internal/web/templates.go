package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

type templates struct {
	game  *template.Template
	frag  *template.Template
	index *template.Template
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
.board .row{display:flex}
.board button{width:40px;height:40px;font-size:20px;margin:0 8px 8px 0;background:white;border:1px solid #999;border-radius:4px}
.board button.win{background:yellow}
.layout{display:flex;gap:24px}
.status{margin-bottom:8px;font-weight:600}
</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the game fragment within the same set so the page can include it
	template.Must(base.New("game").Parse(gameTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-Tac-Toe</h1><form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div hx-sse="swap:game">{{template "game" .}}</div>
</div>`))
	// Standalone fragment used for htmx swaps and broadcasts
	frag := template.Must(template.New("game_only").Parse(gameTemplate))
	return &templates{game: game, frag: frag, index: index}
}

// renderTemplate executes name from t's set, or t itself when name is empty.
func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const gameTemplate = `
<div id="game" class="layout">
  <div>
    <div class="status">{{.Status}}</div>
    {{if .Error}}<div class="alert">{{.Error}}</div>{{end}}
    <div class="board">
    {{range .Rows}}
      <div class="row">
      {{range .}}
        <form hx-post="/game/{{$.ID}}/play" hx-target="#game" hx-swap="outerHTML" method="post" action="/game/{{$.ID}}/play">
          <input type="hidden" name="pos" value="{{.Pos}}">
          <button type="submit" aria-label="square-{{if .Symbol}}{{.Symbol}}{{else}}empty{{end}}"{{if .Win}} class="win"{{end}}{{if .Disabled}} disabled{{end}}>{{.Symbol}}</button>
        </form>
      {{end}}
      </div>
    {{end}}
    </div>
  </div>
  <div>
    <form hx-post="/game/{{.ID}}/order" hx-target="#game" hx-swap="outerHTML" method="post" action="/game/{{.ID}}/order">
      <button type="submit" id="order">{{.ToggleLabel}}</button>
    </form>
    <ol id="moves">
    {{range .Moves}}
      <li>{{if .Current}}<span style="font-weight:700">{{.Label}}</span>{{else}}
        <form hx-post="/game/{{$.ID}}/jump" hx-target="#game" hx-swap="outerHTML" method="post" action="/game/{{$.ID}}/jump">
          <input type="hidden" name="ply" value="{{.Ply}}">
          <button type="submit">{{.Label}}</button>
        </form>{{end}}
      </li>
    {{end}}
    </ol>
  </div>
</div>
`

type cellView struct {
	Pos      int
	Symbol   string
	Win      bool
	Disabled bool
}

type gameView struct {
	ID          string
	Status      string
	Error       string
	Rows        [3][3]cellView
	Moves       []domain.MoveItem
	ToggleLabel string
}

func newGameView(gs app.GameState, errMsg string) gameView {
	h := gs.History
	board := h.CurrentBoard()
	out := h.Outcome()
	v := gameView{
		ID:          gs.ID,
		Status:      out.Summary(h.Next()),
		Error:       errMsg,
		Moves:       domain.MoveList(h, gs.Order),
		ToggleLabel: gs.Order.ToggleLabel(),
	}
	for i, c := range board {
		v.Rows[i/3][i%3] = cellView{
			Pos:      i,
			Symbol:   c.String(),
			Win:      out.OnLine(i),
			Disabled: c != domain.Empty || out.Status != domain.InProgress,
		}
	}
	return v
}
