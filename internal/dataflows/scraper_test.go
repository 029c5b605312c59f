package dataflows

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestExtractBeta(t *testing.T) {
	html := `<html><body><table>
	  <tr><td>Market Cap</td><td>2.95T</td></tr>
	  <tr><td>Beta (5Y Monthly)</td><td>1.29</td></tr>
	  <tr><td>52 Week High</td><td>199.62</td></tr>
	</table></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("NewDocumentFromReader: %v", err)
	}

	beta, err := extractBeta(doc)
	if err != nil {
		t.Fatalf("extractBeta: %v", err)
	}
	if beta != 1.29 {
		t.Fatalf("expected beta 1.29, got %v", beta)
	}
}

func TestExtractBetaMissing(t *testing.T) {
	html := `<html><body><table>
	  <tr><td>Market Cap</td><td>2.95T</td></tr>
	</table></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("NewDocumentFromReader: %v", err)
	}

	if _, err := extractBeta(doc); err == nil {
		t.Fatalf("expected error when beta row is absent")
	}
}
