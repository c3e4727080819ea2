package fetcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/xaenox/inbox-triage/internal/models"
	gmail "google.golang.org/api/gmail/v1"
)

// GmailAPI adapts a Gmail service to the MailAPI interface. Message bodies
// are never requested; hydration uses format=metadata plus the snippet.
type GmailAPI struct {
	service *gmail.Service
	userID  string
}

func NewGmailAPI(service *gmail.Service, userID string) *GmailAPI {
	return &GmailAPI{
		service: service,
		userID:  userID,
	}
}

func (g *GmailAPI) EstimateUnread(ctx context.Context, query string) (int64, error) {
	response, err := g.service.Users.Messages.List(g.userID).
		Q(query).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to estimate unread count: %w", err)
	}
	return response.ResultSizeEstimate, nil
}

func (g *GmailAPI) ListPage(ctx context.Context, query, pageToken string, pageSize int64) ([]string, string, error) {
	call := g.service.Users.Messages.List(g.userID).
		Q(query).
		MaxResults(pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]string, 0, len(response.Messages))
	for _, message := range response.Messages {
		ids = append(ids, message.Id)
	}
	return ids, response.NextPageToken, nil
}

func (g *GmailAPI) GetMetadata(ctx context.Context, id string) (*models.EmailRecord, error) {
	message, err := g.service.Users.Messages.Get(g.userID, id).
		Format("metadata").
		MetadataHeaders("From", "Subject", "Date").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	return recordFromMessage(message), nil
}

func recordFromMessage(message *gmail.Message) *models.EmailRecord {
	record := &models.EmailRecord{
		ID:       message.Id,
		ThreadID: message.ThreadId,
		// A non-empty snippet means the message has some visible content.
		HasBody: strings.TrimSpace(message.Snippet) != "",
	}

	if message.Payload != nil {
		for _, header := range message.Payload.Headers {
			switch header.Name {
			case "From":
				record.From = header.Value
			case "Subject":
				record.Subject = header.Value
			case "Date":
				record.Date = header.Value
			}
		}
	}

	return record
}
