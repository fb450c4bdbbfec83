// Package pdf renders a blogpost into a downloadable PDF document.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"blogfolio/backend/internal/domain/blogpost"

	"github.com/go-pdf/fpdf"
)

// Render produces a single-document PDF for the post: title, category and
// read time header, the content body, then the comment list.
func Render(post *blogpost.Blogpost) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(post.Title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.MultiCell(0, 9, post.Title, "", "L", false)

	doc.SetFont("Helvetica", "I", 10)
	header := fmt.Sprintf("%s · %d %s read", post.Category, post.ReadTime.Value, post.ReadTime.Unit)
	doc.MultiCell(0, 6, header, "", "L", false)
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	for _, paragraph := range strings.Split(post.Content, "\n") {
		doc.MultiCell(0, 6, paragraph, "", "L", false)
	}

	if len(post.Comments) > 0 {
		doc.Ln(6)
		doc.SetFont("Helvetica", "B", 13)
		doc.MultiCell(0, 7, fmt.Sprintf("Comments (%d)", len(post.Comments)), "", "L", false)
		doc.SetFont("Helvetica", "", 10)
		for _, comment := range post.Comments {
			doc.MultiCell(0, 5, fmt.Sprintf("%s: %s", comment.Name, comment.Text), "", "L", false)
			doc.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
