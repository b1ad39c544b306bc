package bubble

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Option names a bubble setting.
type Option string

const (
	OptArrowSize           Option = "arrowSize"
	OptArrowStyle          Option = "arrowStyle"
	OptShadowStyle         Option = "shadowStyle"
	OptMinWidth            Option = "minWidth"
	OptMinHeight           Option = "minHeight"
	OptMaxWidth            Option = "maxWidth"
	OptMaxHeight           Option = "maxHeight"
	OptArrowPosition       Option = "arrowPosition"
	OptPadding             Option = "padding"
	OptBorderWidth         Option = "borderWidth"
	OptBorderColor         Option = "borderColor"
	OptBorderRadius        Option = "borderRadius"
	OptBackgroundColor     Option = "backgroundColor"
	OptCloseSrc            Option = "closeSrc"
	OptDisableAutoPan      Option = "disableAutoPan"
	OptDisableAnimation    Option = "disableAnimation"
	OptHideCloseButton     Option = "hideCloseButton"
	OptTabClassName        Option = "tabClassName"
	OptBackgroundClassName Option = "backgroundClassName"
	OptZIndex              Option = "zIndex"
	OptPosition            Option = "position"
	OptContent             Option = "content"
)

// DefaultCloseSrc is the close icon used when none is configured.
const DefaultCloseSrc = "https://maps.gstatic.com/intl/en_us/mapfiles/iw_close.gif"

// Values maps options to raw values. Numbers may be given as any numeric
// type or as strings like "12" or "12px".
type Values map[Option]any

// defaultOrder is the order defaults are applied in. Handlers for later
// options see the effects of earlier ones.
var defaultOrder = []Option{
	OptArrowSize,
	OptArrowStyle,
	OptShadowStyle,
	OptArrowPosition,
	OptPadding,
	OptBorderWidth,
	OptBorderColor,
	OptBorderRadius,
	OptBackgroundColor,
	OptCloseSrc,
	OptDisableAutoPan,
	OptDisableAnimation,
}

// Defaults returns a fresh copy of the default option table.
func Defaults() Values {
	return Values{
		OptArrowSize:        15,
		OptArrowStyle:       0,
		OptShadowStyle:      1,
		OptArrowPosition:    50,
		OptPadding:          10,
		OptBorderWidth:      1,
		OptBorderColor:      "#ccc",
		OptBorderRadius:     10,
		OptBackgroundColor:  "#fff",
		OptCloseSrc:         DefaultCloseSrc,
		OptDisableAutoPan:   false,
		OptDisableAnimation: false,
	}
}

// Store holds option values and runs the handler registered for an option
// whenever it is set.
type Store struct {
	values   Values
	handlers map[Option]func()
}

// NewStore merges overrides over defaults. Neither map is retained.
func NewStore(defaults, overrides Values) *Store {
	s := &Store{
		values:   make(Values, len(defaults)+len(overrides)),
		handlers: make(map[Option]func()),
	}
	for k, v := range defaults {
		s.values[k] = v
	}
	for k, v := range overrides {
		s.values[k] = v
	}
	return s
}

// Handle registers fn as the change handler for key, replacing any previous one.
func (s *Store) Handle(key Option, fn func()) {
	s.handlers[key] = fn
}

// Set stores value and runs the handler for key, if any. Unknown keys are
// stored without side effects.
func (s *Store) Set(key Option, value any) {
	s.values[key] = value
	if fn, ok := s.handlers[key]; ok {
		fn()
	}
}

// SetValues sets every value in canonical order.
func (s *Store) SetValues(values Values) {
	for _, key := range canonicalOrder(values) {
		s.Set(key, values[key])
	}
}

// Apply re-runs the handlers of every stored option in canonical order.
func (s *Store) Apply() {
	for _, key := range canonicalOrder(s.values) {
		if fn, ok := s.handlers[key]; ok {
			fn()
		}
	}
}

// Get returns the stored value for key.
func (s *Store) Get(key Option) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// IsSet reports whether key holds a non-nil value.
func (s *Store) IsSet(key Option) bool {
	v, ok := s.values[key]
	return ok && v != nil
}

// Int returns key as an integer, 0 when missing or unparsable.
func (s *Store) Int(key Option) int {
	return toInt(s.values[key])
}

// Float returns key as a float, 0 when missing or unparsable.
func (s *Store) Float(key Option) float64 {
	f, err := cast.ToFloat64E(s.values[key])
	if err != nil {
		n, _ := leadingInt(cast.ToString(s.values[key]))
		return float64(n)
	}
	return f
}

// Bool returns key as a boolean, false when missing or unparsable.
func (s *Store) Bool(key Option) bool {
	b, err := cast.ToBoolE(s.values[key])
	if err != nil {
		return false
	}
	return b
}

// String returns key as a string, "" when missing.
func (s *Store) String(key Option) string {
	v, err := cast.ToStringE(s.values[key])
	if err != nil {
		return ""
	}
	return v
}

// Snapshot returns a copy of the stored values.
func (s *Store) Snapshot() Values {
	out := make(Values, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func canonicalOrder(values Values) []Option {
	keys := make([]Option, 0, len(values))
	seen := make(map[Option]bool, len(defaultOrder))
	for _, k := range defaultOrder {
		seen[k] = true
		if _, ok := values[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []Option
	for k := range values {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(keys, rest...)
}

func toInt(v any) int {
	switch v.(type) {
	case nil, bool:
		return 0
	}
	n, err := cast.ToIntE(v)
	if err == nil {
		return n
	}
	n, _ = leadingInt(cast.ToString(v))
	return n
}

// leadingInt parses an optional sign followed by digits at the start of s.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
