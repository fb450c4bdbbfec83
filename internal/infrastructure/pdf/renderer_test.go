package pdf

import (
	"strings"
	"testing"
	"time"

	"blogfolio/backend/internal/domain/blogpost"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	post := &blogpost.Blogpost{
		ID:       "p1",
		Category: "go",
		Title:    "Profiling in production",
		ReadTime: blogpost.ReadTime{Value: 7, Unit: "minutes"},
		Authors:  []string{"a1"},
		Content:  "First paragraph.\nSecond paragraph.",
		Comments: []blogpost.Comment{
			{ID: "c1", BlogpostID: "p1", Name: "Reader", Text: "Saved my week", CreatedAt: now, UpdatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	rendered, err := Render(post)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(rendered), "%PDF"), "output must start with the PDF magic")
	assert.Greater(t, len(rendered), 500)
}

func TestRenderWithoutComments(t *testing.T) {
	t.Parallel()

	post := &blogpost.Blogpost{
		ID:       "p2",
		Category: "sql",
		Title:    "Partial indexes",
		ReadTime: blogpost.ReadTime{Value: 3, Unit: "minutes"},
		Content:  "Short note.",
	}

	rendered, err := Render(post)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(rendered), "%PDF"))
}
