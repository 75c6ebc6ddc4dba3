package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ReportService mails census summary reports via Amazon SES.
type ReportService struct {
	client    *sesv2.Client
	registry  *RegistryService
	fromEmail string
	fromName  string
	enabled   bool
}

// NewReportService creates a report service. When fromEmail is empty the
// service is disabled and every send becomes a logged no-op.
func NewReportService(registry *RegistryService, awsRegion, fromEmail, fromName string) (*ReportService, error) {
	if fromEmail == "" {
		log.Println("Report service disabled: SES_FROM_EMAIL not configured")
		return &ReportService{registry: registry, enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Report service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &ReportService{
		client:    sesv2.NewFromConfig(cfg),
		registry:  registry,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the report service is enabled
func (s *ReportService) IsEnabled() bool {
	return s.enabled
}

// SendCensusReport mails the current census summary to the given address.
func (s *ReportService) SendCensusReport(ctx context.Context, toEmail string) error {
	if !s.enabled {
		log.Printf("Skipping report send (service disabled): census report to %s", toEmail)
		return nil
	}

	stats := s.registry.CensusStats()
	subject := fmt.Sprintf("Neighborhood Census Report - %s", time.Now().Format("Jan 2, 2006"))
	htmlBody, textBody := s.renderReport(stats)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *ReportService) renderReport(stats Stats) (htmlBody, textBody string) {
	var mostRows, mostLines []string
	for _, h := range s.registry.MostPopulated() {
		mostRows = append(mostRows, fmt.Sprintf("<tr><td>%d</td><td>%s</td><td>%d</td><td>%.1f</td></tr>",
			h.HouseNumber(), h.Address(), h.Size(), h.AverageAge()))
		mostLines = append(mostLines, fmt.Sprintf("  house %d (%s): %d members, average age %.1f",
			h.HouseNumber(), h.Address(), h.Size(), h.AverageAge()))
	}

	htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body>
	<h1>Neighborhood Census Report</h1>
	<ul>
		<li>Households: %d</li>
		<li>Total population: %d</li>
		<li>Adults: %d</li>
		<li>Children: %d</li>
	</ul>
	<h2>Largest households</h2>
	<table border="1" cellpadding="4">
		<tr><th>House</th><th>Address</th><th>Members</th><th>Average age</th></tr>
		%s
	</table>
	<p>This is an automated report from the Neighborly registry.</p>
</body>
</html>
`, stats.Households, stats.TotalPopulation, stats.TotalAdults, stats.TotalChildren,
		strings.Join(mostRows, "\n\t\t"))

	textBody = fmt.Sprintf(`Neighborhood Census Report

Households:       %d
Total population: %d
Adults:           %d
Children:         %d

Largest households:
%s

---
This is an automated report from the Neighborly registry.
`, stats.Households, stats.TotalPopulation, stats.TotalAdults, stats.TotalChildren,
		strings.Join(mostLines, "\n"))

	return htmlBody, textBody
}

// sendEmail sends an email using Amazon SES
func (s *ReportService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send report to %s: %w", toEmail, err)
	}

	log.Printf("Census report sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
