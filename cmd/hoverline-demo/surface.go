package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hoverline/internal/element"
	"github.com/dshills/hoverline/internal/geometry"
	"github.com/dshills/hoverline/internal/tablehandle"
	"github.com/dshills/hoverline/internal/view"
)

// Table layout on the terminal grid. Terminal cells double as pixels.
const (
	tableX = 8
	tableY = 4
	cellW  = 14
	cellH  = 2
	nRows  = 4
	nCols  = 4

	textX = 8
	textY = 1
)

// surface is a terminal-backed editor view: one paragraph of typed text
// above a fixed table. The event loop mutates the document while the
// provider's debounced evaluation reads it from a timer goroutine, so
// every doc access goes through the mutex.
type surface struct {
	mu  sync.Mutex
	doc string
}

func (s *surface) typeRune(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc += string(r)
}

// backspace removes the last byte; returns false on an empty document.
func (s *surface) backspace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.doc) == 0 {
		return false
	}
	s.doc = s.doc[:len(s.doc)-1]
	return true
}

func (s *surface) text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *surface) Editable() bool { return true }

func (s *surface) Focused() bool { return true }

func (s *surface) Composing() bool { return false }

func (s *surface) State() view.State {
	doc := s.text()
	caret := len(doc)
	return view.State{
		Doc:       doc,
		Selection: view.Selection{Ranges: []view.Range{{From: caret, To: caret}}},
	}
}

func (s *surface) SelectionRects() []geometry.Rect {
	return []geometry.Rect{{X: float64(textX + len(s.text())), Y: textY, Width: 1, Height: 1}}
}

func (s *surface) ContentRect() geometry.Rect {
	return geometry.Rect{X: tableX, Y: tableY, Width: nCols * cellW, Height: nRows * cellH}
}

func (s *surface) CellAt(p geometry.Point) (view.CellIndex, bool) {
	if !s.ContentRect().Contains(p) {
		return view.NoCell, false
	}
	return view.CellIndex{
		Row: int(p.Y-tableY) / cellH,
		Col: int(p.X-tableX) / cellW,
	}, true
}

func (s *surface) CellRegions(idx view.CellIndex) (view.Regions, bool) {
	if idx.Row < 0 || idx.Row >= nRows || idx.Col < 0 || idx.Col >= nCols {
		return view.Regions{}, false
	}
	return view.Regions{
		Cell: geometry.Rect{X: float64(tableX + idx.Col*cellW), Y: float64(tableY + idx.Row*cellH), Width: cellW, Height: cellH},
		Row:  geometry.Rect{X: tableX, Y: float64(tableY + idx.Row*cellH), Width: nCols * cellW, Height: cellH},
		Col:  geometry.Rect{X: float64(tableX + idx.Col*cellW), Y: tableY, Width: cellW, Height: nRows * cellH},
	}, true
}

func (s *surface) AncestorBlock(m view.BlockMatcher) (view.Block, bool) {
	blk := view.TextBlock{Kind: "paragraph", Text: s.text()}
	if m != nil && !m(blk) {
		return nil, false
	}
	return blk, true
}

// indicators bundles the demo's managed elements.
type indicators struct {
	refs  *tablehandle.Refs
	popup *element.Base
}

func newIndicators() *indicators {
	refs := tablehandle.NewRefs()
	refs.RowHandle = element.NewBase(2, 0)
	refs.ColHandle = element.NewBase(0, 1)
	refs.VerticalLine = element.NewBase(1, 0)
	refs.HorizontalLine = element.NewBase(0, 1)

	content := element.NewBase(0, 0)
	content.SetOffset(tableX, tableY)
	content.SetExtent(nCols*cellW, nRows*cellH)
	refs.Content = content

	return &indicators{
		refs:  refs,
		popup: element.NewBase(18, 6),
	}
}

var (
	styleDefault = tcell.StyleDefault
	styleGrid    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHandle  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	styleLine    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	stylePopup   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
)

func draw(screen tcell.Screen, s *surface, ind *indicators) {
	screen.Clear()

	doc := s.text()
	drawText(screen, textX, textY, styleDefault, doc)
	drawText(screen, textX, textY+1, styleGrid, "type '/' for the menu, move the mouse over the table, Esc quits")
	screen.ShowCursor(textX+len(doc), textY)

	drawGrid(screen)
	drawElement(screen, ind.refs.RowHandle, styleHandle, '▐')
	drawElement(screen, ind.refs.ColHandle, styleHandle, '▄')
	drawElement(screen, ind.refs.VerticalLine, styleLine, '│')
	drawElement(screen, ind.refs.HorizontalLine, styleLine, '─')
	drawPopup(screen, ind.popup)

	screen.Show()
}

func drawGrid(screen tcell.Screen) {
	for r := 0; r < nRows; r++ {
		for c := 0; c < nCols; c++ {
			x := tableX + c*cellW
			y := tableY + r*cellH
			for dy := 0; dy < cellH; dy++ {
				screen.SetContent(x, y+dy, '·', nil, styleGrid)
				screen.SetContent(x+cellW-1, y+dy, '·', nil, styleGrid)
			}
			for dx := 0; dx < cellW; dx++ {
				screen.SetContent(x+dx, y, '·', nil, styleGrid)
			}
		}
	}
}

func drawElement(screen tcell.Screen, el element.Element, style tcell.Style, ch rune) {
	if el == nil || !el.Visible() {
		return
	}
	b := el.Bounds()
	w := int(b.Size().Width)
	if w < 1 {
		w = 1
	}
	h := int(b.Size().Height)
	if h < 1 {
		h = 1
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			screen.SetContent(int(b.Left())+dx, int(b.Top())+dy, ch, nil, style)
		}
	}
}

func drawPopup(screen tcell.Screen, popup element.Element) {
	if !popup.Visible() {
		return
	}
	b := popup.Bounds()
	items := []string{" /table  ", " /image  ", " /quote  ", " /divider"}
	for i, item := range items {
		drawText(screen, int(b.X), int(b.Y)+i, stylePopup, item)
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
