package main

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/mvickers/inkmark/internal/config"
	"github.com/mvickers/inkmark/internal/dispatcher"
	"github.com/mvickers/inkmark/internal/engine/mutate"
	"github.com/mvickers/inkmark/internal/engine/search"
	"github.com/mvickers/inkmark/internal/engine/selection"
	"github.com/mvickers/inkmark/internal/logging"
	"github.com/mvickers/inkmark/internal/script"
	"github.com/mvickers/inkmark/internal/session"
)

type mode int

const (
	modeEdit mode = iota
	modeFind
	modeReplaceQuery
	modeReplaceWith
	modeTransform
)

var (
	styleText      = tcell.StyleDefault
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleBar       = tcell.StyleDefault.Reverse(true)
)

// eventWake forces an extra event loop turn after a mutation so the
// pending selection restore runs promptly.
type eventWake struct{ tcell.EventTime }

// eventConfig carries a reloaded configuration onto the event loop.
type eventConfig struct {
	tcell.EventTime
	cfg config.Config
}

// editor is the interactive shell around a workspace: it turns key
// events into intents, routes them through the dispatcher, and paints
// the active document.
//
// Mutations land in two turns. The turn that produces a result applies
// the new text and paints it; the following turn re-asserts the result
// selection and scrolls it into view. Content first, selection later,
// scroll last.
type editor struct {
	screen tcell.Screen
	ws     *session.Workspace
	disp   *dispatcher.Dispatcher
	host   *script.Host
	log    *logging.Logger

	mode  mode
	input string // prompt line being typed
	query string // last find query
	repl  string // last replacement text

	status     string
	pendingSel *selection.Span
	anchor     int // fixed end of a shift-extended selection
	top, left  int // viewport origin
	quit       bool
	quitArmed  bool
}

func newEditor(screen tcell.Screen, ws *session.Workspace, disp *dispatcher.Dispatcher, host *script.Host, log *logging.Logger) *editor {
	return &editor{
		screen: screen,
		ws:     ws,
		disp:   disp,
		host:   host,
		log:    log,
	}
}

func (ed *editor) run() error {
	defer ed.screen.Fini()

	for !ed.quit {
		ed.render()
		ev := ed.screen.PollEvent()
		if ev == nil {
			return nil
		}
		ed.restorePending()
		ed.handleEvent(ev)
	}
	return nil
}

func (ed *editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		ed.handleKey(ev)
	case *tcell.EventResize:
		ed.screen.Sync()
	case *tcell.EventInterrupt:
		ed.quit = true
	case *eventConfig:
		ed.applyConfig(ev.cfg)
	case *eventWake:
		// Nothing to do: restorePending already ran for this turn.
	}
}

// wake posts a no-op event so the loop turns over without waiting for
// the user.
func (ed *editor) wake() {
	ev := &eventWake{}
	ev.SetEventNow()
	_ = ed.screen.PostEvent(ev)
}

// postConfig hands a reloaded configuration to the event loop. Called
// from the watcher goroutine.
func (ed *editor) postConfig(cfg config.Config) {
	ev := &eventConfig{cfg: cfg}
	ev.SetEventNow()
	_ = ed.screen.PostEvent(ev)
}

// applyConfig swaps in the reloaded dispatcher options and log level.
// Store path, debounce, and history limit bind at startup and keep
// their original values.
func (ed *editor) applyConfig(cfg config.Config) {
	ed.disp = newDispatcher(cfg, ed.host, ed.log)
	ed.log.SetLevel(logging.ParseLevel(cfg.Log.Level))
	ed.log.Info("configuration reloaded")
	ed.status = "configuration reloaded"
}

// reveal schedules the selection restore and scroll for the next turn.
func (ed *editor) reveal(sp selection.Span) {
	ed.pendingSel = &sp
	ed.wake()
}

func (ed *editor) restorePending() {
	sp := ed.pendingSel
	if sp == nil {
		return
	}
	ed.pendingSel = nil
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	doc.SetSelection(*sp)
	ed.scrollTo(doc, sp.End)
}

// applyResult pushes a mutation result into the active document and
// schedules the selection reveal.
func (ed *editor) applyResult(doc *session.Document, res mutate.Result) {
	if err := doc.ApplyResult(res); err != nil {
		ed.status = err.Error()
		return
	}
	ed.anchor = res.Start
	ed.reveal(res.Span())
}

// dispatchOr routes an intent through the dispatcher and falls back to
// the given default edit when no mutation claims it. Reports whether
// anything was applied.
func (ed *editor) dispatchOr(intent dispatcher.Intent, fallback func(selection.State) (mutate.Result, bool)) bool {
	doc := ed.ws.Active()
	if doc == nil {
		return false
	}
	st := doc.State()
	res, ok := ed.disp.Dispatch(st, intent)
	if !ok && fallback != nil {
		res, ok = fallback(st)
	}
	if !ok {
		return false
	}
	ed.applyResult(doc, res)
	return true
}

func (ed *editor) command(cmd dispatcher.Command) {
	ed.dispatchOr(dispatcher.CommandIntent{Command: cmd}, nil)
}

func (ed *editor) handleKey(ev *tcell.EventKey) {
	if ed.mode != modeEdit {
		ed.handlePromptKey(ev)
		return
	}
	if ev.Key() != tcell.KeyCtrlQ {
		ed.quitArmed = false
	}
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			ed.handleAltRune(ev.Rune())
			return
		}
		ch := string(ev.Rune())
		ed.dispatchOr(dispatcher.CharIntent{Char: ch}, insertLiteral(ch))
	case tcell.KeyTab:
		ed.dispatchOr(dispatcher.KeyIntent{Key: dispatcher.KeyTab}, insertLiteral("\t"))
	case tcell.KeyEnter:
		ed.dispatchOr(dispatcher.KeyIntent{Key: dispatcher.KeyEnter}, insertLiteral("\n"))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ed.dispatchOr(dispatcher.KeyIntent{Key: dispatcher.KeyBackspace}, deleteBackward)
	case tcell.KeyDelete:
		ed.applyEdit(deleteForward)
	case tcell.KeyLeft:
		ed.horizontal(shift, -1)
	case tcell.KeyRight:
		ed.horizontal(shift, +1)
	case tcell.KeyUp:
		ed.vertical(shift, -1)
	case tcell.KeyDown:
		ed.vertical(shift, +1)
	case tcell.KeyHome:
		ed.lineEdge(shift, false)
	case tcell.KeyEnd:
		ed.lineEdge(shift, true)
	case tcell.KeyCtrlZ:
		ed.undo()
	case tcell.KeyCtrlY:
		ed.redo()
	case tcell.KeyCtrlF:
		ed.mode = modeFind
		ed.input = ed.query
	case tcell.KeyCtrlG:
		ed.find(false)
	case tcell.KeyCtrlP:
		ed.find(true)
	case tcell.KeyCtrlR:
		ed.mode = modeReplaceQuery
		ed.input = ed.query
	case tcell.KeyCtrlB:
		ed.command(dispatcher.CmdBold)
	case tcell.KeyCtrlK:
		ed.command(dispatcher.CmdLink)
	case tcell.KeyCtrlT:
		ed.openTransformPrompt()
	case tcell.KeyCtrlN:
		ed.newDocument()
	case tcell.KeyCtrlO:
		ed.nextDocument()
	case tcell.KeyCtrlW:
		ed.closeDocument()
	case tcell.KeyCtrlS:
		ed.saveAll()
	case tcell.KeyCtrlQ:
		ed.requestQuit()
	case tcell.KeyEscape:
		ed.status = ""
	}
}

func (ed *editor) handleAltRune(r rune) {
	switch unicode.ToLower(r) {
	case 'i':
		ed.command(dispatcher.CmdItalic)
	case 'c':
		ed.command(dispatcher.CmdCode)
	case 's':
		ed.command(dispatcher.CmdStrike)
	case 'q':
		ed.command(dispatcher.CmdQuote)
	case 'u':
		ed.command(dispatcher.CmdBullet)
	case '1':
		ed.command(dispatcher.CmdHeading1)
	case '2':
		ed.command(dispatcher.CmdHeading2)
	case '3':
		ed.command(dispatcher.CmdHeading3)
	}
}

func (ed *editor) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ed.mode = modeEdit
		ed.input = ""
		ed.status = ""
	case tcell.KeyEnter:
		ed.submitPrompt()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if ed.input != "" {
			ed.input = ed.input[:prevRuneStart(ed.input, len(ed.input))]
		}
	case tcell.KeyCtrlA:
		if ed.mode == modeReplaceWith {
			ed.replaceAll()
		}
	case tcell.KeyRune:
		ed.input += string(ev.Rune())
	}
}

func (ed *editor) submitPrompt() {
	switch ed.mode {
	case modeFind:
		ed.query = ed.input
		ed.mode = modeEdit
		ed.input = ""
		ed.find(false)
	case modeReplaceQuery:
		if ed.input == "" {
			ed.mode = modeEdit
			return
		}
		ed.query = ed.input
		ed.input = ""
		ed.mode = modeReplaceWith
	case modeReplaceWith:
		// Enter replaces the highlighted match and queues the next one;
		// the prompt stays open for repeated replacements.
		ed.replaceOne()
	case modeTransform:
		name := ed.input
		ed.mode = modeEdit
		ed.input = ""
		if name == "" {
			ed.status = ""
			return
		}
		if ed.dispatchOr(dispatcher.TransformIntent{Name: name}, nil) {
			ed.status = fmt.Sprintf("applied %q", name)
		} else {
			ed.status = fmt.Sprintf("transform %q did not apply", name)
		}
	}
}

func (ed *editor) openTransformPrompt() {
	if ed.host == nil {
		ed.status = "scripts are disabled"
		return
	}
	names := ed.host.Names()
	if len(names) == 0 {
		ed.status = "no transforms loaded"
		return
	}
	ed.mode = modeTransform
	ed.input = ""
	ed.status = "transforms: " + strings.Join(names, ", ")
}

func (ed *editor) find(reverse bool) {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	if ed.query == "" {
		ed.status = "no search query"
		return
	}
	span, ok := search.Find(doc.State(), ed.query, reverse)
	if !ok {
		ed.status = fmt.Sprintf("no match for %q", ed.query)
		return
	}
	doc.SetSelection(span)
	ed.anchor = span.Start
	ed.scrollTo(doc, span.End)

	text := doc.Content()
	row, _ := locate(lineOffsets(text), text, span.Start)
	ed.status = fmt.Sprintf("match on line %d", row+1)
}

func (ed *editor) replaceOne() {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	ed.repl = ed.input
	out, result := search.ReplaceOne(doc.State(), ed.query, ed.repl)
	switch result {
	case search.NoMatch:
		ed.status = fmt.Sprintf("no match for %q", ed.query)
	case search.Found:
		doc.SetSelection(out.Span())
		ed.anchor = out.Start
		ed.scrollTo(doc, out.End)
		ed.status = "match selected; Enter replaces it"
	case search.Replaced:
		ed.applyResult(doc, mutate.Result{Text: out.Text, Start: out.Start, End: out.End, Consumed: true})
		ed.status = "replaced"
	}
}

func (ed *editor) replaceAll() {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	ed.repl = ed.input
	ed.mode = modeEdit
	ed.input = ""
	out, n := search.ReplaceAll(doc.State(), ed.query, ed.repl)
	if n == 0 {
		ed.status = fmt.Sprintf("no match for %q", ed.query)
		return
	}
	ed.applyResult(doc, mutate.Result{Text: out.Text, Start: out.Start, End: out.End, Consumed: true})
	ed.status = fmt.Sprintf("%d replacement(s)", n)
}

func (ed *editor) undo() {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	st, ok := doc.Undo()
	if !ok {
		ed.status = "nothing to undo"
		return
	}
	ed.anchor = st.Start
	ed.reveal(selection.Span{Start: st.Start, End: st.End})
	ed.status = "undo"
}

func (ed *editor) redo() {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	st, ok := doc.Redo()
	if !ok {
		ed.status = "nothing to redo"
		return
	}
	ed.anchor = st.Start
	ed.reveal(selection.Span{Start: st.Start, End: st.End})
	ed.status = "redo"
}

func (ed *editor) newDocument() {
	doc := ed.ws.Create("", "")
	ed.switchedTo(doc)
	ed.status = fmt.Sprintf("created %s", doc.Title)
}

func (ed *editor) nextDocument() {
	docs := ed.ws.All()
	if len(docs) < 2 {
		ed.status = "no other documents"
		return
	}
	active := ed.ws.Active()
	idx := 0
	for i, d := range docs {
		if d == active {
			idx = i
			break
		}
	}
	next := docs[(idx+1)%len(docs)]
	if err := ed.ws.SetActive(next.ID); err != nil {
		ed.status = err.Error()
		return
	}
	ed.switchedTo(next)
	ed.status = fmt.Sprintf("switched to %s", next.Title)
}

func (ed *editor) closeDocument() {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	if doc.IsModified() {
		ed.status = "unsaved changes (Ctrl-S to save first)"
		return
	}
	title := doc.Title
	if err := ed.ws.Close(doc.ID); err != nil {
		ed.status = err.Error()
		return
	}
	if ed.ws.Count() == 0 {
		ed.ws.Create("", "")
	}
	ed.switchedTo(ed.ws.Active())
	ed.status = fmt.Sprintf("closed %s", title)
}

// switchedTo resets per-document view state after the active document
// changes. A pending selection restore belongs to the previous document
// and is dropped.
func (ed *editor) switchedTo(doc *session.Document) {
	ed.pendingSel = nil
	ed.top, ed.left = 0, 0
	ed.anchor = 0
	if doc != nil {
		ed.anchor = doc.Selection().Start
	}
}

func (ed *editor) saveAll() {
	if err := ed.ws.SaveAll(); err != nil {
		ed.status = err.Error()
		return
	}
	ed.status = fmt.Sprintf("saved %d document(s)", ed.ws.Count())
}

func (ed *editor) requestQuit() {
	if ed.ws.HasDirty() && !ed.quitArmed {
		ed.quitArmed = true
		ed.status = "unsaved changes: Ctrl-S saves, Ctrl-Q again quits"
		return
	}
	ed.quit = true
}

// applyEdit applies a plain edit that bypasses the dispatcher.
func (ed *editor) applyEdit(edit func(selection.State) (mutate.Result, bool)) {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	if res, ok := edit(doc.State()); ok {
		ed.applyResult(doc, res)
	}
}

// movingEnd returns the selection end a motion should move: the end
// opposite the anchor.
func (ed *editor) movingEnd(sp selection.Span) int {
	if !sp.IsCaret() && sp.Start != ed.anchor {
		return sp.Start
	}
	return sp.End
}

func (ed *editor) extendOrSet(doc *session.Document, shift bool, pos int) {
	if shift {
		start, end := ed.anchor, pos
		if start > end {
			start, end = end, start
		}
		doc.SetSelection(selection.Span{Start: start, End: end})
	} else {
		doc.SetSelection(selection.Span{Start: pos, End: pos})
		ed.anchor = pos
	}
	ed.scrollTo(doc, pos)
}

func (ed *editor) horizontal(shift bool, dir int) {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	sp := doc.Selection()
	if !shift && !sp.IsCaret() {
		// Collapse to the edge in the direction of travel.
		pos := sp.Start
		if dir > 0 {
			pos = sp.End
		}
		ed.extendOrSet(doc, false, pos)
		return
	}
	text := doc.Content()
	caret := ed.movingEnd(sp)
	pos := caret
	if dir < 0 {
		pos = prevRuneStart(text, caret)
	} else {
		pos = nextRuneStart(text, caret)
	}
	ed.extendOrSet(doc, shift, pos)
}

func (ed *editor) vertical(shift bool, dir int) {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	text := doc.Content()
	starts := lineOffsets(text)
	caret := ed.movingEnd(doc.Selection())
	row, col := locate(starts, text, caret)

	target := row + dir
	var pos int
	switch {
	case target < 0:
		pos = 0
	case target >= len(starts):
		pos = len(text)
	default:
		pos = offsetAt(text, starts, target, col)
	}
	ed.extendOrSet(doc, shift, pos)
}

func (ed *editor) lineEdge(shift bool, end bool) {
	doc := ed.ws.Active()
	if doc == nil {
		return
	}
	st := doc.State()
	caret := ed.movingEnd(doc.Selection())
	pos := st.LineStart(caret)
	if end {
		pos = st.LineEnd(caret)
	}
	ed.extendOrSet(doc, shift, pos)
}

// scrollTo adjusts the viewport so pos is visible.
func (ed *editor) scrollTo(doc *session.Document, pos int) {
	text := doc.Content()
	starts := lineOffsets(text)
	row, col := locate(starts, text, pos)

	w, h := ed.screen.Size()
	rows := h - 1
	if rows < 1 {
		rows = 1
	}
	if row < ed.top {
		ed.top = row
	}
	if row >= ed.top+rows {
		ed.top = row - rows + 1
	}
	if col < ed.left {
		ed.left = col
	}
	if w > 0 && col >= ed.left+w {
		ed.left = col - w + 1
	}
}

func (ed *editor) render() {
	ed.screen.Clear()
	w, h := ed.screen.Size()
	if w == 0 || h == 0 {
		ed.screen.Show()
		return
	}

	doc := ed.ws.Active()
	if doc != nil && h > 1 {
		ed.renderDocument(doc, w, h-1)
	}
	ed.renderBar(doc, w, h-1)
	ed.screen.Show()
}

func (ed *editor) renderDocument(doc *session.Document, w, rows int) {
	text := doc.Content()
	sp := doc.Selection()
	starts := lineOffsets(text)

	if ed.top > len(starts)-1 {
		ed.top = len(starts) - 1
	}
	if ed.top < 0 {
		ed.top = 0
	}

	for r := 0; r < rows; r++ {
		row := ed.top + r
		if row >= len(starts) {
			break
		}
		lineStart := starts[row]
		lineEnd := len(text)
		if row+1 < len(starts) {
			lineEnd = starts[row+1] - 1
		}

		col := 0
		for off := lineStart; off < lineEnd; {
			rn, size := utf8.DecodeRuneInString(text[off:])
			if rn == '\t' {
				rn = ' '
			}
			if col >= ed.left {
				x := col - ed.left
				if x >= w {
					break
				}
				style := styleText
				if !sp.IsCaret() && off >= sp.Start && off < sp.End {
					style = styleSelection
				}
				ed.screen.SetContent(x, r, rn, nil, style)
			}
			off += size
			col++
		}
	}

	if ed.mode != modeEdit {
		return // the prompt owns the cursor
	}
	if !sp.IsCaret() {
		ed.screen.HideCursor()
		return
	}
	row, col := locate(starts, text, sp.End)
	x, y := col-ed.left, row-ed.top
	if x < 0 || x >= w || y < 0 || y >= rows {
		ed.screen.HideCursor()
		return
	}
	ed.screen.ShowCursor(x, y)
}

func (ed *editor) renderBar(doc *session.Document, w, y int) {
	if y < 0 {
		return
	}
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleBar)
	}

	if ed.mode != modeEdit {
		line := promptLabel(ed.mode) + ed.input
		drawText(ed.screen, 0, y, styleBar, line)
		cx := utf8.RuneCountInString(line)
		if cx >= w {
			cx = w - 1
		}
		ed.screen.ShowCursor(cx, y)
		return
	}

	left := " no document"
	if doc != nil {
		mod := ""
		if doc.IsModified() {
			mod = "*"
		}
		idx, count := ed.documentPosition(doc)
		left = fmt.Sprintf(" %s%s  %d/%d", doc.Title, mod, idx, count)
	}
	if ed.status != "" {
		left += "  |  " + ed.status
	}
	drawText(ed.screen, 0, y, styleBar, left)

	if doc != nil {
		text := doc.Content()
		row, col := locate(lineOffsets(text), text, doc.Selection().End)
		right := fmt.Sprintf("Ln %d, Col %d ", row+1, col+1)
		x := w - utf8.RuneCountInString(right)
		if x > utf8.RuneCountInString(left) {
			drawText(ed.screen, x, y, styleBar, right)
		}
	}
}

func (ed *editor) documentPosition(doc *session.Document) (int, int) {
	docs := ed.ws.All()
	for i, d := range docs {
		if d == doc {
			return i + 1, len(docs)
		}
	}
	return 0, len(docs)
}

func promptLabel(m mode) string {
	switch m {
	case modeFind:
		return "Find: "
	case modeReplaceQuery:
		return "Replace: "
	case modeReplaceWith:
		return "With: "
	case modeTransform:
		return "Transform: "
	default:
		return ""
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
