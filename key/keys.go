// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Deep Linking - these keys govern how the page address and the playback position are kept in sync.
const (
	DeepLinkBroadcast = "deeplink.broadcast"
	DeepLinkPermalink = "deeplink.permalink"
)

// Media Playback - these keys configure the playback engine driven by the deep-link controller.
const (
	Player             = "player.default"
	PlayerTickInterval = "player.tick_interval"
	PlayerAutoplay     = "player.autoplay"
)

// Chapter Marks - these keys configure how authored chapters are loaded and published.
const (
	ChaptersPushToPlayer = "chapters.push_to_player"
	Aniskip              = "chapters.aniskip"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the chapter list's styling.
const (
	TUIItemSpacing = "tui.item_spacing"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
