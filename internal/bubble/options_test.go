package bubble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStore_OverridesWin(t *testing.T) {
	s := NewStore(Defaults(), Values{OptPadding: 4, "custom": "x"})

	assert.Equal(t, 4, s.Int(OptPadding))
	assert.Equal(t, 15, s.Int(OptArrowSize))
	assert.Equal(t, "#ccc", s.String(OptBorderColor))
	assert.Equal(t, "x", s.String("custom"))
	assert.False(t, s.IsSet(OptMaxWidth))
}

func TestStore_SetRunsHandler(t *testing.T) {
	s := NewStore(Defaults(), nil)
	calls := 0
	s.Handle(OptPadding, func() { calls++ })

	s.Set(OptPadding, 3)
	s.Set(OptArrowSize, 3)
	s.Set("unknown", 3)

	assert.Equal(t, 1, calls)
	v, ok := s.Get("unknown")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestStore_Int(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{name: "int", value: 12, want: 12},
		{name: "float truncates", value: 12.7, want: 12},
		{name: "numeric string", value: "12", want: 12},
		{name: "px string", value: "12px", want: 12},
		{name: "negative string", value: "-3", want: -3},
		{name: "decimal string", value: "7.5", want: 7},
		{name: "garbage", value: "wide", want: 0},
		{name: "empty", value: "", want: 0},
		{name: "nil", value: nil, want: 0},
		{name: "bool", value: true, want: 0},
		{name: "struct", value: struct{}{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil, Values{OptPadding: tt.value})
			assert.Equal(t, tt.want, s.Int(OptPadding))
		})
	}
}

func TestStore_Bool(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{value: true, want: true},
		{value: "true", want: true},
		{value: 1, want: true},
		{value: false, want: false},
		{value: "maybe", want: false},
		{value: nil, want: false},
	}

	for _, tt := range tests {
		s := NewStore(nil, Values{OptDisableAutoPan: tt.value})
		assert.Equal(t, tt.want, s.Bool(OptDisableAutoPan), "value %v", tt.value)
	}
}

func TestStore_MissingValuesFallBack(t *testing.T) {
	s := NewStore(nil, nil)

	assert.Equal(t, 0, s.Int(OptMinWidth))
	assert.Equal(t, 0.0, s.Float(OptMinWidth))
	assert.Equal(t, "", s.String(OptBorderColor))
	assert.False(t, s.Bool(OptHideCloseButton))
}

func TestStore_SetValuesUsesCanonicalOrder(t *testing.T) {
	s := NewStore(nil, nil)
	var order []Option
	for _, key := range []Option{OptZIndex, OptBorderWidth, OptArrowSize, OptPadding, OptMaxWidth} {
		key := key
		s.Handle(key, func() { order = append(order, key) })
	}

	s.SetValues(Values{
		OptZIndex:      5,
		OptMaxWidth:    10,
		OptPadding:     1,
		OptBorderWidth: 1,
		OptArrowSize:   2,
	})

	assert.Equal(t, []Option{OptArrowSize, OptPadding, OptBorderWidth, OptMaxWidth, OptZIndex}, order)
}

func TestStore_ApplyRunsStoredHandlers(t *testing.T) {
	s := NewStore(Defaults(), nil)
	ran := map[Option]int{}
	s.Handle(OptBorderWidth, func() { ran[OptBorderWidth]++ })
	s.Handle(OptZIndex, func() { ran[OptZIndex]++ })

	s.Apply()

	assert.Equal(t, 1, ran[OptBorderWidth])
	assert.Equal(t, 0, ran[OptZIndex], "unset options have nothing to apply")
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := NewStore(Defaults(), nil)
	snap := s.Snapshot()
	snap[OptPadding] = 99

	assert.Equal(t, 10, s.Int(OptPadding))
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		color string
		want  bool
	}{
		{color: "#ccc", want: true},
		{color: "#1e1e2e", want: true},
		{color: "212", want: true},
		{color: "0", want: true},
		{color: "256", want: false},
		{color: "", want: false},
		{color: "  ", want: false},
		{color: "blue-ish", want: false},
		{color: "#12", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidColor(tt.color), "color %q", tt.color)
	}
}
