//go:build gui

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/tmarsh/syllabo/internal/session"
	"github.com/tmarsh/syllabo/internal/state"
	"github.com/tmarsh/syllabo/internal/syllabus"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ui wires one session to the checklist widgets.
type ui struct {
	window fyne.Window
	store  *state.Store
	fresh  bool

	sess     *session.Session
	title    *widget.Label
	counts   *widget.Label
	bar      *widget.ProgressBar
	list     *fyne.Container
	resetBtn *widget.Button
}

func newUI(w fyne.Window, store *state.Store, fresh bool) *ui {
	u := &ui{
		window: w,
		store:  store,
		fresh:  fresh,
		title:  widget.NewLabel("No syllabus loaded"),
		counts: widget.NewLabel(""),
		bar:    widget.NewProgressBar(),
		list:   container.NewVBox(),
	}
	u.title.TextStyle.Bold = true
	u.resetBtn = widget.NewButton("Reset Progress", u.reset)
	u.resetBtn.Disable()
	u.list.Add(widget.NewLabel("Open a syllabus to build your checklist."))
	return u
}

// open reads a document and replaces the current session. On failure
// the current checklist stays untouched.
func (u *ui) open(path string) {
	sess, err := session.Open(u.store, path)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to read %s: %w", filepath.Base(path), err), u.window)
		return
	}
	if u.fresh {
		sess.Forget()
	}
	u.sess = sess
	u.resetBtn.Enable()
	u.title.SetText(filepath.Base(path))
	u.rebuild()
}

// rebuild replaces the checklist rows from the session's items.
func (u *ui) rebuild() {
	u.list.Objects = nil

	items := u.sess.Items()
	if len(items) == 0 {
		u.list.Add(widget.NewLabel("No topics recognized in this document."))
	}
	for _, item := range items {
		indent := strings.Repeat("    ", item.Level)
		check := widget.NewCheck(indent+item.Text, nil)
		check.SetChecked(item.Done)

		idx := item.OrderIndex
		check.OnChanged = func(bool) {
			// Write-through; a failed save degrades to in-memory state.
			u.sess.Toggle(idx)
			u.updateHeader()
		}
		u.list.Add(check)
	}

	u.updateHeader()
	u.list.Refresh()
}

func (u *ui) updateHeader() {
	done, total := u.sess.Summary()
	u.counts.SetText(fmt.Sprintf("%d of %d topics completed", done, total))
	u.bar.SetValue(u.sess.Completion())
}

func (u *ui) reset() {
	if u.sess == nil {
		return
	}
	u.sess.Reset()
	u.rebuild()
}

func (u *ui) showOpenDialog() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.window)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		u.open(path)
	}, u.window)
	fd.SetFilter(storage.NewExtensionFileFilter(syllabus.SupportedExtensions()))
	fd.Show()
}

func main() {
	fresh := flag.Bool("fresh", false, "Ignore saved progress")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Syllabo - Syllabus Progress Checklist (GUI)\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  syllabo [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  syllabo                  Open a window and pick a syllabus\n")
		fmt.Fprintf(os.Stderr, "  syllabo syllabus.pdf     Load a syllabus at startup\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("syllabo %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	store, err := state.NewStore()
	if err != nil {
		var corrupt *state.CorruptStateError
		if !errors.As(err, &corrupt) {
			fmt.Fprintf(os.Stderr, "Error: Failed to open progress store: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Warning: %v; starting with empty progress\n", corrupt)
	}

	a := app.New()
	w := a.NewWindow("Syllabo - Study Progress")

	u := newUI(w, store, *fresh)

	openBtn := widget.NewButton("Open Syllabus…", u.showOpenDialog)
	toolbar := container.NewHBox(openBtn, u.resetBtn)

	header := container.NewVBox(toolbar, u.title, u.counts, u.bar)
	content := container.NewBorder(header, nil, nil, nil, container.NewVScroll(u.list))

	w.SetContent(content)
	w.Resize(fyne.NewSize(800, 600))

	if flag.NArg() > 0 {
		u.open(flag.Arg(0))
	}

	w.ShowAndRun()
}
