package risk

import "fmt"

// NoRisksMessage is shown when the newest document predicts nothing.
const NoRisksMessage = "No health risks detected."

// FeedItem is one rendered entry of the risk panel.
type FeedItem struct {
	Label       string   `json:"label"`
	Title       string   `json:"title"`
	Probability string   `json:"probability"`
	Advice      []string `json:"advice"`
}

// Feed renders the newest prediction document for display. A nil document
// or an empty prediction list yields no items and the explicit no-risks
// message.
func Feed(doc *Prediction) ([]FeedItem, string) {
	if doc == nil || len(doc.Predictions) == 0 {
		return nil, NoRisksMessage
	}

	items := make([]FeedItem, 0, len(doc.Predictions))
	for _, entry := range doc.Predictions {
		item := FeedItem{
			Label:       entry.Label,
			Title:       TitleFor(entry.Label),
			Probability: formatProbability(entry.Probability),
			Advice:      entry.Advice,
		}
		if len(item.Advice) == 0 {
			item.Advice = AdviceFor(entry.Label)
		}
		items = append(items, item)
	}
	return items, ""
}

func formatProbability(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *p)
}
