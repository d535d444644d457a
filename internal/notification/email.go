package notification

import (
	"bytes"
	"fmt"
	"net/smtp"
	"sort"
	"text/template"
	"time"

	"github.com/technova/airdash-server/internal/risk"
	"github.com/technova/airdash-server/pkg/config"
)

// RiskNotifier sends email alerts when a health-risk prediction arrives.
type RiskNotifier struct {
	config *config.SMTPConfig
	tmpl   *template.Template
}

const riskAlertTemplate = `Air quality health risk prediction received at {{.CreatedAt}}.

Predicted risks:
{{range .Risks}}  - {{.Title}} (probability: {{.Probability}})
{{range .Advice}}    {{.}}
{{end}}{{end}}
Contributing measurements:
{{range .Features}}  {{.Name}}: {{.Value}}
{{end}}
This is an automated alert from airdash-server.
`

type riskAlertData struct {
	CreatedAt string
	Risks     []risk.FeedItem
	Features  []featureLine
}

type featureLine struct {
	Name  string
	Value float64
}

// NewRiskNotifier creates a notifier from SMTP settings. A notifier with
// no username configured is valid but sends nothing.
func NewRiskNotifier(cfg *config.SMTPConfig) (*RiskNotifier, error) {
	tmpl, err := template.New("riskAlert").Parse(riskAlertTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse alert template: %w", err)
	}

	return &RiskNotifier{
		config: cfg,
		tmpl:   tmpl,
	}, nil
}

// Enabled reports whether SMTP credentials are configured.
func (n *RiskNotifier) Enabled() bool {
	return n.config.Username != "" && n.config.Password != ""
}

// SendRiskAlert emails the prediction's risk feed. Predictions with no
// flagged risks do not produce an email.
func (n *RiskNotifier) SendRiskAlert(doc *risk.Prediction) error {
	if !n.Enabled() {
		fmt.Println("SMTP not configured, skipping risk alert email")
		return nil
	}

	items, _ := risk.Feed(doc)
	if len(items) == 0 {
		return nil
	}

	body, err := n.renderBody(doc, items)
	if err != nil {
		return fmt.Errorf("failed to render alert body: %w", err)
	}

	subject := "Air Quality Health Risk Alert"
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.config.From, n.config.To, subject, body)

	addr := fmt.Sprintf("%s:%d", n.config.Host, n.config.Port)
	auth := smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)

	if err := smtp.SendMail(addr, auth, n.config.From, []string{n.config.To}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	fmt.Printf("Sent risk alert email for prediction %s\n", doc.ID)
	return nil
}

func (n *RiskNotifier) renderBody(doc *risk.Prediction, items []risk.FeedItem) (string, error) {
	features := make([]featureLine, 0, len(doc.Features))
	for name, value := range doc.Features {
		features = append(features, featureLine{Name: name, Value: value})
	}
	sort.Slice(features, func(i, j int) bool {
		return features[i].Name < features[j].Name
	})

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	data := riskAlertData{
		CreatedAt: createdAt.Format(time.RFC1123),
		Risks:     items,
		Features:  features,
	}

	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// TestConnection verifies the SMTP server is reachable.
func (n *RiskNotifier) TestConnection() error {
	if !n.Enabled() {
		return fmt.Errorf("smtp credentials not configured")
	}

	addr := fmt.Sprintf("%s:%d", n.config.Host, n.config.Port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}
	defer client.Close()

	return nil
}
