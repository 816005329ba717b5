package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cuelink/cuelink/icon"
	"github.com/cuelink/cuelink/key"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Players lists the accepted values of player.default.
var Players = []string{"mpv", "simulator"}

// MinTickInterval is the shortest accepted player.tick_interval, in milliseconds.
const MinTickInterval = 10

// ErrUnknownKey is returned for keys that were never registered.
var ErrUnknownKey = errors.New("unknown key")

// rules hold the constraints of keys whose type alone does not tell a valid value.
var rules = map[string]func(value any) error{
	key.Player: func(value any) error {
		return oneOf(cast.ToString(value), Players)
	},
	key.PlayerTickInterval: func(value any) error {
		if ms := cast.ToInt(value); ms < MinTickInterval {
			return fmt.Errorf("%dms is too short, use at least %d", ms, MinTickInterval)
		}
		return nil
	},
	key.IconsVariant: func(value any) error {
		return oneOf(cast.ToString(value), icon.AvailableVariants())
	},
	key.DeepLinkPermalink: func(value any) error {
		raw := cast.ToString(value)
		if raw == "" {
			return nil
		}

		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%q is not an absolute address", raw)
		}
		if u.Fragment != "" {
			return fmt.Errorf("%q already carries a fragment", raw)
		}
		return nil
	},
	key.LogsLevel: func(value any) error {
		_, err := logrus.ParseLevel(cast.ToString(value))
		return err
	},
	key.TUIItemSpacing: func(value any) error {
		if n := cast.ToInt(value); n < 0 || n > 4 {
			return fmt.Errorf("%d is out of range 0..4", n)
		}
		return nil
	},
}

// Check reports whether value is acceptable for the key name.
func Check(name string, value any) error {
	if _, ok := Default[name]; !ok {
		return fmt.Errorf("%w %s", ErrUnknownKey, name)
	}

	rule, ok := rules[name]
	if !ok {
		return nil
	}

	if err := rule(value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Parse converts command line input to the type of the key's default and checks it.
func Parse(name string, input []string) (any, error) {
	field, ok := Default[name]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownKey, name)
	}
	if len(input) == 0 {
		return nil, fmt.Errorf("%s: value is required", name)
	}

	var value any
	switch field.Value.(type) {
	case string:
		value = input[0]
	case int:
		n, err := strconv.Atoi(input[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q", name, input[0])
		}
		value = n
	case bool:
		b, err := strconv.ParseBool(input[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean %q", name, input[0])
		}
		value = b
	case []string:
		value = lo.FlatMap(input, func(s string, _ int) []string {
			return strings.Split(s, ",")
		})
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", name, field.Value)
	}

	if err := Check(name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func oneOf(value string, options []string) error {
	if lo.Contains(options, value) {
		return nil
	}
	return fmt.Errorf("unknown value %q, expected one of %s", value, strings.Join(options, ", "))
}
