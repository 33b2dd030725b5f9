package archive

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/tilmock/cefr-backend/internal/scoring"
)

// SubmissionMeta identifies who submitted what, for the document header.
type SubmissionMeta struct {
	UserID      int
	Username    string
	Email       string
	MockID      int
	ModuleTitle string
	SubmittedAt time.Time
}

type reviewCard struct {
	Number    int
	Section   string
	Prompt    string
	Submitted string
	Expected  string
	Correct   bool
}

type summaryChip struct {
	Label string
	Score string
}

type reviewDoc struct {
	Title     string
	MockID    int
	UserID    int
	Username  string
	Email     string
	Submitted string
	Total     string
	Chips     []summaryChip
	Cards     []reviewCard
}

// RenderReviewHTML builds the per-question review document for a scored
// submission. labels maps section names to display titles; prompts maps
// section names to per-position prompt texts (both optional; missing
// entries fall back to generated labels).
func RenderReviewHTML(rep *scoring.Report, meta SubmissionMeta, labels map[string]string, prompts map[string][]string) ([]byte, error) {
	doc := reviewDoc{
		Title:     meta.ModuleTitle,
		MockID:    meta.MockID,
		UserID:    meta.UserID,
		Username:  meta.Username,
		Email:     meta.Email,
		Submitted: meta.SubmittedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		Total:     fmt.Sprintf("%d/%d", rep.TotalCorrect, rep.TotalPossible),
	}

	number := 1
	for _, sec := range rep.Sections {
		label := labels[sec.Name]
		if label == "" {
			label = sec.Name
		}

		doc.Chips = append(doc.Chips, summaryChip{
			Label: label,
			Score: fmt.Sprintf("%d/%d", sec.CorrectCount, sec.TotalCount),
		})

		secPrompts := prompts[sec.Name]
		for _, item := range sec.Items {
			prompt := fmt.Sprintf("%s question %d", label, item.Position+1)
			if item.Position < len(secPrompts) && secPrompts[item.Position] != "" {
				prompt = secPrompts[item.Position]
			}

			doc.Cards = append(doc.Cards, reviewCard{
				Number:    number,
				Section:   label,
				Prompt:    prompt,
				Submitted: item.Submitted,
				Expected:  item.Expected,
				Correct:   item.Correct,
			})
			number++
		}
	}

	var buf bytes.Buffer
	if err := reviewTmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render review document: %w", err)
	}
	return buf.Bytes(), nil
}

var reviewTmpl = template.Must(template.New("review").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>{{.Title}} Submission</title>
  <style>
    body { margin:0; padding:28px; background:#f4f7fb; color:#102238; font-family:Segoe UI,Arial,sans-serif; }
    .wrap { max-width:1100px; margin:0 auto; background:#fff; border:1px solid #d7e0ec; border-radius:18px; overflow:hidden; }
    .hero { padding:24px 28px; background:linear-gradient(120deg,#0f766e,#0891b2); color:#fff; }
    .hero h1 { margin:0 0 8px; font-size:30px; }
    .meta { display:grid; grid-template-columns:repeat(3,minmax(180px,1fr)); gap:8px 16px; font-size:14px; }
    .summary { padding:16px 28px; border-bottom:1px solid #d7e0ec; display:flex; gap:16px; flex-wrap:wrap; }
    .chip { background:#eef6ff; border:1px solid #cfe0ff; color:#123a78; border-radius:999px; padding:6px 12px; font-size:13px; font-weight:700; }
    .body { padding:20px 28px 28px; display:grid; gap:12px; }
    .qa-card { border:1px solid #d7e0ec; border-radius:12px; overflow:hidden; background:#fff; }
    .qa-card.ok { border-left:6px solid #1f9d55; }
    .qa-card.bad { border-left:6px solid #cc3344; }
    .qa-head { display:flex; gap:8px; align-items:center; padding:10px 12px; background:#f8fbff; border-bottom:1px solid #d7e0ec; }
    .qno { font-weight:800; color:#0a4f8a; }
    .sec { font-size:12px; font-weight:700; color:#19436b; background:#e8f1ff; border-radius:999px; padding:4px 8px; }
    .st { margin-left:auto; font-size:12px; font-weight:700; color:#4a5b70; }
    .qa-body { padding:12px; }
    .prompt { margin:0 0 10px; white-space:pre-wrap; color:#1f3653; }
    .row { font-size:14px; margin:3px 0; }
  </style>
</head>
<body>
  <div class="wrap">
    <div class="hero">
      <h1>{{.Title}} Archive</h1>
      <div class="meta">
        <div><b>Mock ID:</b> {{.MockID}}</div>
        <div><b>Submitted:</b> {{.Submitted}}</div>
        <div><b>Total:</b> {{.Total}}</div>
        <div><b>User ID:</b> {{.UserID}}</div>
        <div><b>Username:</b> {{.Username}}</div>
        <div><b>Email:</b> {{.Email}}</div>
      </div>
    </div>
    <div class="summary">
      {{range .Chips}}<span class="chip">{{.Label}}: {{.Score}}</span>{{end}}
    </div>
    <div class="body">
      {{range .Cards}}
      <div class="qa-card {{if .Correct}}ok{{else}}bad{{end}}">
        <div class="qa-head">
          <span class="qno">Q{{.Number}}</span>
          <span class="sec">{{.Section}}</span>
          <span class="st">{{if .Correct}}Correct{{else}}Incorrect{{end}}</span>
        </div>
        <div class="qa-body">
          <p class="prompt">{{.Prompt}}</p>
          <div class="row"><b>User:</b> {{.Submitted}}</div>
          <div class="row"><b>Correct:</b> {{.Expected}}</div>
        </div>
      </div>
      {{end}}
    </div>
  </div>
</body>
</html>
`))
