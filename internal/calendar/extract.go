// Package calendar extracts structured service records from the markup of
// the congregation's public calendar page.
package calendar

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"finsk-kalender/internal/model"
)

const (
	// Bold labels used by the calendar markup. Any other bold text in the
	// leading position is a free-text occasion (feast name etc).
	labelLocation = "Plats:"
	labelTime     = "Tid:"

	unknownServiceName = "Unknown"
)

// Meta line format: "2026-02-20 | Fredag"
var dateRegex = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*\|\s*(\S+)`)

// Extract parses the calendar page markup and returns one record per
// calendar entry, in document order. It never fails: a malformed document,
// a missing calendar section or a broken entry simply yields fewer (or
// zero) records.
func Extract(htmlText string) []model.ChurchService {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil
	}

	var services []model.ChurchService

	section := doc.Find("section.calendar").First()
	section.Find("div.calendar-item").Each(func(i int, item *goquery.Selection) {
		if svc, ok := extractItem(item); ok {
			services = append(services, svc)
		}
	})

	return services
}

func extractItem(item *goquery.Selection) (model.ChurchService, bool) {
	meta := item.Find("div.meta").First().Text()
	m := dateRegex.FindStringSubmatch(meta)
	if m == nil {
		// Without a date the entry is meaningless; drop it entirely.
		return model.ChurchService{}, false
	}

	svc := model.ChurchService{
		Date:        m[1],
		DayOfWeek:   m[2],
		ServiceName: unknownServiceName,
	}

	content := item.Find("div.calendar-item-content")
	if name := strings.TrimSpace(content.Find("h3").First().Text()); name != "" {
		svc.ServiceName = name
	}

	details := content.Find("div").First()
	if details.Length() == 0 {
		// No detail block is fine: date, weekday and name stand alone.
		return svc, true
	}

	svc.Location = labelValue(details, labelLocation)
	svc.Time = labelValue(details, labelTime)
	svc.Occasion = occasion(details)
	svc.Notes = notes(details)

	return svc, true
}

// labelValue finds the first <strong> whose text equals label and returns
// the plain text that follows it within the same inline run, up to the
// next element boundary.
func labelValue(details *goquery.Selection, label string) *string {
	var value *string
	details.Find("strong").EachWithBreak(func(i int, strong *goquery.Selection) bool {
		if strings.TrimSpace(strong.Text()) != label {
			return true
		}
		if text := strings.TrimSpace(followingText(strong.Nodes[0])); text != "" {
			value = &text
		}
		return false
	})
	return value
}

// followingText concatenates the text nodes directly after n, stopping at
// the first sibling that is markup rather than text.
func followingText(n *html.Node) string {
	var b strings.Builder
	for sib := n.NextSibling; sib != nil && sib.Type == html.TextNode; sib = sib.NextSibling {
		b.WriteString(sib.Data)
	}
	return b.String()
}

// occasion inspects only the positionally first bold token of the detail
// block. If that token is already consumed as a Plats/Tid label the entry
// has no occasion, even when a non-reserved bold token appears later.
func occasion(details *goquery.Selection) *string {
	text := strings.TrimSpace(details.Find("strong").First().Text())
	if text == "" || text == labelLocation || text == labelTime {
		return nil
	}
	return &text
}

// notes joins the non-empty paragraphs of the detail block, in document
// order, with single newlines.
func notes(details *goquery.Selection) *string {
	var parts []string
	details.Find("p").Each(func(i int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, "\n")
	return &joined
}
