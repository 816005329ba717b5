package icon

type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Mark
	Active
	Link
	Play
	Pause
	Clip
)

var icons = map[Icon]iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "+"},
	Fail:     {emoji: "❌", nerd: "", plain: "x"},
	Progress: {emoji: "⏳", nerd: "", plain: "~"},
	Mark:     {emoji: "🔖", nerd: "", plain: "-"},
	Active:   {emoji: "👉", nerd: "", plain: ">"},
	Link:     {emoji: "🔗", nerd: "", plain: "#"},
	Play:     {emoji: "▶️", nerd: "", plain: "|>"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||"},
	Clip:     {emoji: "✂️", nerd: "", plain: "[]"},
}
