package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/wricardo/focus-game/game/engine"
)

const players = `
player {
  name  = "PlayerA"
  color = "Red"
}
player {
  name  = "PlayerB"
  color = "Green"
}
`

func TestParse(t *testing.T) {
	pb, err := Parse([]byte(`
name   = "Sample"
config = "quick"
`+players+`
step "move" {
  player = "PlayerA"
  from   = [0, 0]
  to     = [0, 1]
  count  = 1
}
step "reserve" {
  player = "PlayerB"
  to     = [9, 9]
  expect = "Invalid location"
}
step "show_pieces" {
  at     = [0, 1]
  expect = ["RED", "RED"]
}
step "show_reserve" {
  player = "PlayerA"
  expect = 0
}
step "show_captured" {
  player = "PlayerB"
}
`), "sample.hcl")
	require.NoError(t, err)

	assert.Equal(t, "Sample", pb.Name)
	assert.Equal(t, "quick", pb.Config)
	assert.Equal(t, engine.PlayerSpec{Name: "PlayerA", Color: "Red"}, pb.Players[0])
	assert.Equal(t, engine.PlayerSpec{Name: "PlayerB", Color: "Green"}, pb.Players[1])
	require.Len(t, pb.Steps, 5)

	move := pb.Steps[0]
	assert.Equal(t, 1, move.Index)
	assert.Equal(t, StepMove, move.Kind)
	assert.Equal(t, engine.Position{Row: 0, Col: 0}, move.From)
	assert.Equal(t, engine.Position{Row: 0, Col: 1}, move.To)
	assert.Equal(t, 1, move.Count)
	assert.False(t, move.HasExpect())
	assert.Equal(t, "move PlayerA (0,0)->(0,1) x1", move.String())

	reserve := pb.Steps[1]
	assert.Equal(t, engine.Position{Row: 9, Col: 9}, reserve.To, "off-board positions are kept")
	assert.True(t, reserve.HasExpect())
	assert.Equal(t, cty.StringVal("Invalid location"), reserve.Expect)

	show := pb.Steps[2]
	assert.Equal(t, engine.Position{Row: 0, Col: 1}, show.At)
	assert.True(t, show.Expect.Type().IsTupleType())

	assert.True(t, pb.Steps[3].Expect.RawEquals(cty.NumberIntVal(0)))
	assert.False(t, pb.Steps[4].HasExpect())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "syntax error",
			src:  `name = `,
			want: "failed to parse",
		},
		{
			name: "one player",
			src: `
player {
  name  = "PlayerA"
  color = "Red"
}`,
			want: "need exactly 2 player blocks",
		},
		{
			name: "duplicate colors",
			src: `
player {
  name  = "PlayerA"
  color = "Red"
}
player {
  name  = "PlayerB"
  color = "red"
}`,
			want: "duplicate player color",
		},
		{
			name: "unknown kind",
			src:  players + `step "jump" { player = "PlayerA" }`,
			want: "step 1 (jump): unknown step kind",
		},
		{
			name: "missing player",
			src:  players + `step "show_reserve" {}`,
			want: "player is required",
		},
		{
			name: "missing count",
			src: players + `
step "move" {
  player = "PlayerA"
  from   = [0, 0]
  to     = [0, 1]
}`,
			want: "count is required",
		},
		{
			name: "missing to",
			src:  players + `step "reserve" { player = "PlayerA" }`,
			want: "to is required",
		},
		{
			name: "bad position",
			src:  players + `step "show_pieces" { at = [1, 2, 3] }`,
			want: "at must be [row, col]",
		},
		{
			name: "unsupported attribute",
			src:  players + `step "show_pieces" { cell = [1, 2] }`,
			want: "failed to decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPlaybook)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.hcl")
	assert.Error(t, err)
}
