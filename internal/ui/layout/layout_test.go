package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestHeader_Render(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		want    []string
		missing []string
	}{
		{
			name:    "login",
			header:  Header{Breadcrumb: []string{"Sign in"}},
			want:    []string{"SmartPrep", "Sign in"},
			missing: []string{"🔥"},
		},
		{
			name:   "one day",
			header: Header{Breadcrumb: []string{"Dashboard"}, User: "ada", Streak: 1},
			want:   []string{"ada", "🔥 1 day"},
		},
		{
			name:   "overlay",
			header: Header{Breadcrumb: []string{"Roadmap", "Workspace"}, User: "ada", Streak: 7},
			want:   []string{"Roadmap", "›", "Workspace", "🔥 7 days"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.header.Render(100)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, m := range tt.missing {
				assert.NotContains(t, out, m)
			}
		})
	}
}

func TestRenderFooter_DropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "Next case"},
		{Key: "Ctrl+R", Description: "Run all test cases against the solution"},
	}
	wide := RenderFooter(hints, 120)
	assert.Contains(t, wide, "Run all test cases")

	narrow := RenderFooter(hints, 40)
	assert.Contains(t, narrow, "Submit")
	assert.NotContains(t, narrow, "Run all")
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	out := RenderFrame("head", "body", "foot", 20, 10)
	assert.Equal(t, 10, lipgloss.Height(out))
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[len(lines)-1], "foot")
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 30))
	assert.True(t, IsTooSmall(100, 23))
	assert.False(t, IsTooSmall(80, 24))
	assert.Contains(t, RenderMinSizeMessage(60, 20), "60 x 20")
}
