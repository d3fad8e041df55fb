// Package view renders the application's HTML pages from templates embedded
// at build time.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"money": func(cents int64) string {
		sign := ""
		if cents < 0 {
			sign = "-"
			cents = -cents
		}
		return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
	},
	"date": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			return t.Format("Jan 2, 2006")
		case *time.Time:
			if t != nil {
				return t.Format("Jan 2, 2006")
			}
		}
		return ""
	},
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{
		"signup", "signin", "verify_notice",
		"home", "settings", "expenses", "bills", "tasks",
	} {
		pages[name] = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(files,
			"templates/layout.html",
			"templates/fragments.html",
			"templates/"+name+".html",
		))
	}
}

// Flash is a one-shot notice shown at the top of the next rendered page.
type Flash struct {
	Kind    string // "success", "info", "warning", "error"
	Message string
}

// Page carries the data common to every rendered page plus the
// page-specific payload.
type Page struct {
	Title    string
	UserName string
	Flash    *Flash
	Errors   []string
	Form     map[string]string
	Data     any
}

// ExpensesData is the payload for the expenses page.
type ExpensesData struct {
	Expenses   []domain.Expense
	Total      int
	NextOffset int
	HasMore    bool
}

// BillsData is the payload for the bills page.
type BillsData struct {
	Bills []domain.Bill
}

// TasksData is the payload for the tasks page.
type TasksData struct {
	Tasks []domain.Task
}

// Render writes the named page to w. Template failures are logged; by the
// time execution fails, headers are already written, so the error is not
// surfaced to the client.
func Render(w http.ResponseWriter, name string, page Page) {
	tmpl, ok := pages[name]
	if !ok {
		slog.Error("render unknown page", "page", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", page); err != nil {
		slog.Error("render page", "page", name, "error", err)
	}
}

// ExpenseRowsHTML renders just the expense table rows, for patching into an
// already-rendered page over SSE.
func ExpenseRowsHTML(expenses []domain.Expense) (string, error) {
	return fragmentHTML("expense_rows", expenses)
}

// ExpensesLoadMoreHTML renders the load-more control with an updated offset,
// or an empty placeholder once everything is loaded.
func ExpensesLoadMoreHTML(total, nextOffset int) (string, error) {
	return fragmentHTML("expenses_load_more", map[string]any{
		"Total":      total,
		"NextOffset": nextOffset,
		"HasMore":    nextOffset < total,
	})
}

func fragmentHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := pages["expenses"].ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render fragment %s: %w", name, err)
	}
	return buf.String(), nil
}
