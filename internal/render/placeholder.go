// Package render provides the built-in report renderer. Production
// deployments point the document service at an external rendering service;
// this placeholder produces a minimal but valid single-page PDF carrying the
// visit's data, enough for the folder and signing workflows to operate on.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rhammad/visitflow/internal/domain/visit"
)

// Placeholder renders a minimal PDF report for a visit.
type Placeholder struct{}

// NewPlaceholder creates the placeholder renderer.
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Render implements document.Renderer.
func (p *Placeholder) Render(_ context.Context, v *visit.Visit) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("nil visit")
	}

	lines := []string{
		"Visit Report",
		"Reference: " + v.Reference,
		"Client: " + v.ClientName,
		"Date: " + v.VisitDate.Format("2006-01-02"),
		"Engineer: " + v.Engineer,
		"State: " + string(v.State),
	}

	var content bytes.Buffer
	content.WriteString("BT /F1 12 Tf 50 780 Td 16 TL\n")
	for _, line := range lines {
		fmt.Fprintf(&content, "(%s) Tj T*\n", escapePDFText(line))
	}
	content.WriteString("ET\n")

	return buildPDF(content.Bytes()), nil
}

func escapePDFText(s string) string {
	replacer := bytes.NewBuffer(nil)
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			replacer.WriteByte('\\')
		}
		replacer.WriteRune(r)
	}
	return replacer.String()
}

// buildPDF assembles a single-page document around the given content stream.
func buildPDF(content []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}
