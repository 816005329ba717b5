package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/cuelink/cuelink/app"
	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/color"
	"github.com/cuelink/cuelink/deeplink"
	"github.com/cuelink/cuelink/key"
	"github.com/cuelink/cuelink/player"
	"github.com/cuelink/cuelink/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	chaptersC list.Model
	addressC  textinput.Model
	helpC     help.Model

	app        *app.App
	playerID   string
	controller *deeplink.Controller
	engine     player.Player
	events     mo.Option[<-chan player.Event]
	interval   time.Duration

	snapshot  player.Snapshot
	lastError error

	width, height int
	title         string
}

// advancer is implemented by engines whose clock only moves when told to.
type advancer interface {
	Advance(dt float64)
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	// title, address, status and their gaps
	b.chaptersC.SetSize(b.width, util.Max(b.height-6, 1))
	b.chaptersC.Help.Width = b.width
	b.addressC.Width = b.width
	b.helpC.Width = b.width
}

// refresh rebuilds list rows from the marks. The selection is kept.
func (b *statefulBubble) refresh() {
	items := lo.Map(b.controller.Tracker().Marks(), func(m *chapter.Mark, i int) list.Item {
		return &listItem{mark: m, index: i}
	})
	b.chaptersC.SetItems(items)
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	controller := options.App.Controller(options.PlayerID).MustGet()

	bubble := &statefulBubble{
		keymap:     keymap,
		app:        options.App,
		playerID:   options.PlayerID,
		controller: controller,
		engine:     options.Engine,
		events:     options.Events,
		interval:   options.TickInterval,
		title:      options.Title,
	}

	if bubble.interval <= 0 {
		bubble.interval = time.Duration(viper.GetInt(key.PlayerTickInterval)) * time.Millisecond
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color.Mauve).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.chaptersC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.chaptersC.KeyMap = keymap.forList()
	bubble.chaptersC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.chaptersC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.chaptersC.Title = "Chapters"
	bubble.chaptersC.Styles.Title = lipgloss.NewStyle().Foreground(color.New("230")).Background(color.Mauve).Padding(0, 1)
	bubble.chaptersC.SetStatusBarItemName("chapter", "chapters")
	bubble.chaptersC.SetShowHelp(false)
	bubble.chaptersC.SetFilteringEnabled(false)

	bubble.addressC = textinput.New()
	bubble.addressC.Prompt = "address: "
	bubble.addressC.Placeholder = "https://example.org/episode#t=01:00,02:00"

	bubble.helpC = help.New()

	bubble.refresh()
	bubble.setState(chaptersState)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return bubble
}
