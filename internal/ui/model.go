package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/0xlemi/staffdrill/internal/game"
	"github.com/0xlemi/staffdrill/internal/sequence"
	"github.com/0xlemi/staffdrill/internal/staff"
)

// Staff geometry in terminal cells. The two staves share one grid; the
// bass staff sits bassOffset rows below the treble, which lands middle C
// of both clefs on the same row.
const (
	bassOffset = 12

	gridWidth = 44
	gridTop   = 3
	gridBot   = 25

	staffLeft  = 4
	staffRight = 42

	currentNoteX = 12
	previewNoteX = 26
	previewStep  = 8 // column stride between preview notes
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	staffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	noteStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	correctStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	wrongStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	hintStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFF00"))

	// Button backgrounds, one color per letter
	noteColors = map[string]string{
		"C": "#E8D6B0", // Beige
		"D": "#A020F0", // Purple
		"E": "#FFFF00", // Yellow
		"F": "#FFA500", // Orange
		"G": "#00FF00", // Green
		"A": "#FF0000", // Red
		"B": "#0000FF", // Blue
	}
)

// letters in button order
var letters = []string{"C", "D", "E", "F", "G", "A", "B"}

type keyMap struct {
	Letters key.Binding
	Mute    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Letters, k.Mute, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Letters, k.Mute, k.Quit}}
}

var defaultKeyMap = keyMap{
	Letters: key.NewBinding(
		key.WithKeys("a", "b", "c", "d", "e", "f", "g", "A", "B", "C", "D", "E", "F", "G"),
		key.WithHelp("a-g", "answer"),
	),
	Mute: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mute"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SubmitLetterMsg feeds an answer into the drill. External input
// sources (the MIDI listener) send it through Program.Send; key and
// mouse input funnel into the same path.
type SubmitLetterMsg struct {
	Letter string
}

// timerMsg delivers a scheduled session transition
type timerMsg struct {
	timer game.Timer
}

func timerCmd(t game.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return timerMsg{timer: t}
	})
}

// Player is the slice of the tone synthesizer the UI needs
type Player interface {
	Play(letter string)
	SetMuted(muted bool)
	Muted() bool
}

// Model is the drill screen: it owns the game session and translates
// key, mouse and MIDI input into submissions.
type Model struct {
	session *game.Session
	player  Player
	keys    keyMap
	help    help.Model
	width   int
	height  int
}

// NewModel creates the drill screen for a running session
func NewModel(session *game.Session, player Player) Model {
	return Model{
		session: session,
		player:  player,
		keys:    defaultKeyMap,
		help:    help.New(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.session.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Mute):
			m.player.SetMuted(!m.player.Muted())
			return m, nil
		case key.Matches(msg, m.keys.Letters):
			return m, m.submit(strings.ToUpper(msg.String()))
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if letter, ok := m.buttonAt(msg.X, msg.Y); ok {
				return m, m.submit(letter)
			}
		}

	case SubmitLetterMsg:
		return m, m.submit(msg.Letter)

	case timerMsg:
		m.session.Expire(msg.timer)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// submit runs an answer through the session, sounds its tone and arms
// whatever timers the transition needs
func (m Model) submit(letter string) tea.Cmd {
	res := m.session.Submit(letter)
	if res.Tone != "" {
		m.player.Play(res.Tone)
	}

	var cmds []tea.Cmd
	for _, t := range res.Timers {
		cmds = append(cmds, timerCmd(t))
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.titleView())
	b.WriteString("\n")
	b.WriteString(m.staffView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.buttonsView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) titleView() string {
	return titleStyle.Render("StaffDrill - Name That Note")
}

// rowFor places a note on the shared grid
func rowFor(n sequence.Note) int {
	y := staff.PixelY(n.Clef, n.Step)
	if n.Clef == staff.Bass {
		y += bassOffset
	}
	return y
}

// staffView draws the grand staff with the current note and the two
// preview notes. The current note is a filled head; previews are small
// and dim. Ledger lines appear for any note outside its staff.
func (m Model) staffView() string {
	grid := make([][]rune, gridBot+1)
	for y := range grid {
		grid[y] = make([]rune, gridWidth)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	set := func(x, y int, r rune) {
		if y >= 0 && y < len(grid) && x >= 0 && x < gridWidth {
			grid[y][x] = r
		}
	}

	// Five lines per staff, on the even steps.
	for step := staff.BottomLineStep; step <= staff.TopLineStep; step += 2 {
		for x := staffLeft; x <= staffRight; x++ {
			set(x, staff.PixelY(staff.Treble, step), '─')
			set(x, staff.PixelY(staff.Bass, step)+bassOffset, '─')
		}
	}
	set(1, staff.AnchorY, '𝄞')
	set(1, staff.AnchorY+bassOffset, '𝄢')

	type placed struct {
		x, y, i int
	}
	var notes []placed
	for i, n := range m.session.Queue() {
		x := currentNoteX
		if i > 0 {
			x = previewNoteX + (i-1)*previewStep
		}
		notes = append(notes, placed{x: x, y: rowFor(n), i: i})

		for _, ly := range staff.LedgerLines(n.Clef, n.Step) {
			if n.Clef == staff.Bass {
				ly += bassOffset
			}
			for lx := x - 2; lx <= x+2; lx++ {
				set(lx, ly, '─')
			}
		}
	}

	// Convert rows to strings, splicing in the styled note glyphs.
	var b strings.Builder
	for y := gridTop; y <= gridBot; y++ {
		if y > gridTop {
			b.WriteString("\n")
		}
		row := grid[y]
		x := 0
		for _, p := range notes {
			if p.y != y {
				continue
			}
			b.WriteString(staffStyle.Render(string(row[x:p.x])))
			b.WriteString(m.noteGlyph(p.i))
			x = p.x + 1
		}
		b.WriteString(staffStyle.Render(strings.TrimRight(string(row[x:]), " ")))
	}
	return b.String()
}

// noteGlyph styles the queue note at index i: the current note reflects
// feedback, previews are dim
func (m Model) noteGlyph(i int) string {
	if i > 0 {
		return previewStyle.Render("·")
	}
	switch m.session.Feedback() {
	case game.FeedbackCorrect:
		return correctStyle.Render("●")
	case game.FeedbackWrong:
		return wrongStyle.Render("●")
	default:
		return noteStyle.Render("●")
	}
}

func (m Model) statusView() string {
	correct, attempts := m.session.Score()
	score := infoStyle.Render(fmt.Sprintf("score %d/%d", correct, attempts))

	var state string
	switch m.session.Feedback() {
	case game.FeedbackCorrect:
		state = correctStyle.Render("correct!")
	case game.FeedbackWrong:
		state = wrongStyle.Render("wrong")
	default:
		if cur, ok := m.session.Current(); ok {
			state = infoStyle.Render(cur.Clef.String() + " clef")
		}
	}

	line := score + "  " + state
	if hint := m.session.Hint(); hint != "" {
		line += "  " + hintStyle.Render("hint: "+hint)
	}
	if m.player.Muted() {
		line += "  " + infoStyle.Render("(muted)")
	}
	return line
}

// buttonsView renders one clickable cell per letter. Each button is 3
// cells wide with a single gap cell between them; buttonAt depends on
// that stride.
func (m Model) buttonsView() string {
	parts := make([]string, 0, len(letters))
	for _, l := range letters {
		style := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color(noteColors[l]))
		if m.session.LastPressed() == l {
			style = style.Underline(true)
		}
		parts = append(parts, style.Render(" "+l+" "))
	}
	return strings.Join(parts, " ")
}

// buttonRowY is the row the button bar occupies in the rendered view
func (m Model) buttonRowY() int {
	return lipgloss.Height(m.titleView()) +
		lipgloss.Height(m.staffView()) +
		lipgloss.Height(m.statusView())
}

// buttonAt hit-tests a terminal coordinate against the letter buttons
func (m Model) buttonAt(x, y int) (string, bool) {
	if y != m.buttonRowY() {
		return "", false
	}
	const stride = 4 // 3 cells of button, 1 of gap
	if x%stride == stride-1 {
		return "", false
	}
	idx := x / stride
	if idx < 0 || idx >= len(letters) {
		return "", false
	}
	return letters[idx], true
}
