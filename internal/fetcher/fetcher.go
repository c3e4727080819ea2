package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xaenox/inbox-triage/internal/models"
	"go.uber.org/zap"
)

// MailAPI is the slice of the mail provider the fetcher needs: a best-effort
// unread count, token-paginated id listing, and per-id metadata retrieval.
type MailAPI interface {
	EstimateUnread(ctx context.Context, query string) (int64, error)
	ListPage(ctx context.Context, query, pageToken string, pageSize int64) (ids []string, nextPageToken string, err error)
	GetMetadata(ctx context.Context, id string) (*models.EmailRecord, error)
}

type Fetcher struct {
	api       MailAPI
	query     string
	pageSize  int64
	batchSize int
	pause     time.Duration
	logger    *zap.Logger
	out       io.Writer
	sleep     func(time.Duration)
}

func New(api MailAPI, query string, pageSize int64, batchSize int, pause time.Duration, logger *zap.Logger) *Fetcher {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Fetcher{
		api:       api,
		query:     query,
		pageSize:  pageSize,
		batchSize: batchSize,
		pause:     pause,
		logger:    logger,
		out:       os.Stdout,
		sleep:     time.Sleep,
	}
}

// FetchUnread retrieves every unread message matching the query and hydrates
// each into an EmailRecord. Any error aborts the whole fetch: the error is
// logged and an empty slice is returned, never partial results.
func (f *Fetcher) FetchUnread(ctx context.Context) []*models.EmailRecord {
	estimate, err := f.api.EstimateUnread(ctx, f.query)
	if err != nil {
		f.logger.Error("Failed to estimate unread count", zap.Error(err))
		return []*models.EmailRecord{}
	}
	fmt.Fprintf(f.out, "Total unread emails (excluding spam and archived): %d\n", estimate)

	ids, ok := f.listAllIDs(ctx, estimate)
	if !ok {
		return []*models.EmailRecord{}
	}
	if len(ids) == 0 {
		fmt.Fprintln(f.out, "No unread messages found.")
		return []*models.EmailRecord{}
	}

	fmt.Fprintf(f.out, "Processing %d unread emails...\n", len(ids))

	records := make([]*models.EmailRecord, 0, len(ids))
	for i, id := range ids {
		if i%10 == 0 {
			fmt.Fprintf(f.out, "Processing email %d/%d...\n", i+1, len(ids))
		}

		record, err := f.api.GetMetadata(ctx, id)
		if err != nil {
			f.logger.Error("Failed to fetch message metadata",
				zap.Error(err),
				zap.String("message_id", id))
			return []*models.EmailRecord{}
		}
		records = append(records, record)

		// Fixed pause between hydration batches to stay under provider rate
		// limits; skipped after the final message.
		if (i+1)%f.batchSize == 0 && i < len(ids)-1 {
			fmt.Fprintln(f.out, "Pausing briefly to avoid rate limits...")
			f.sleep(f.pause)
		}
	}

	return records
}

// listAllIDs pages through id listings until the provider stops returning a
// continuation token, a page comes back empty, or the accumulated count
// exceeds the estimate by more than 10%. The overrun guard protects against
// an inaccurate estimate causing unbounded looping.
func (f *Fetcher) listAllIDs(ctx context.Context, estimate int64) ([]string, bool) {
	var ids []string
	pageToken := ""
	page := 0

	for {
		page++
		fmt.Fprintf(f.out, "Fetching page %d of unread emails...\n", page)

		pageIDs, nextToken, err := f.api.ListPage(ctx, f.query, pageToken, f.pageSize)
		if err != nil {
			f.logger.Error("Failed to list messages",
				zap.Error(err),
				zap.Int("page", page))
			return nil, false
		}
		if len(pageIDs) == 0 {
			break
		}

		ids = append(ids, pageIDs...)
		fmt.Fprintf(f.out, "Fetched message IDs: %d/%d\n", len(ids), estimate)

		if nextToken == "" {
			break
		}
		if float64(len(ids)) >= float64(estimate)*1.1 {
			fmt.Fprintln(f.out, "Reached expected number of unread emails. Stopping fetch.")
			break
		}
		pageToken = nextToken
	}

	return ids, true
}
