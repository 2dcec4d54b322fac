package h2h

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/richard-senior/h2h/pkg/transport"
)

// FetchMatchupReport downloads a matchup preview or report page and returns
// its content as markdown for the presentation layer to display alongside
// query results. The analyzer itself never renders anything; this is a
// convenience for CLI hosts.
func FetchMatchupReport(url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("no report url given")
	}

	html, err := transport.GetHTML(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch report page: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(string(html))
	if err != nil {
		return "", fmt.Errorf("failed to convert report to markdown: %w", err)
	}
	return markdown, nil
}
