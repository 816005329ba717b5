// Package icon renders status symbols in the variant picked by icons.variant.
package icon

import (
	"github.com/cuelink/cuelink/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

func (d iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

// Get returns i in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	return icons[i].get()
}
