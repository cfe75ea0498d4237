// Package catalog assembles a channel's full video catalog from the
// paginated upstream API and exposes query views over it.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/googleapi"

	"github.com/aletube/catalogd/model"
)

const (
	pageSize      = 50
	detailWorkers = 2
	maxAttempts   = 3
)

// Service owns catalog retrieval. One Fetch produces one Session that
// streams records as they normalize.
type Service struct {
	resolver ChannelResolver
	lister   PlaylistLister
	details  DetailFetcher
	logger   *slog.Logger

	newBackoff func() backoff.BackOff
}

func NewService(resolver ChannelResolver, lister PlaylistLister, details DetailFetcher, logger *slog.Logger) *Service {
	return &Service{
		resolver: resolver,
		lister:   lister,
		details:  details,
		logger:   logger,
		newBackoff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// Fetch resolves the uploads playlist and starts retrieval. It fails
// fast on an empty channel id or a failed metadata lookup; once a
// Session is returned, later page or batch failures only mark the
// session partial.
func (s *Service) Fetch(ctx context.Context, channelID model.ChannelID) (*Session, error) {
	if channelID == "" {
		return nil, ErrMissingChannel
	}

	var (
		summary model.ChannelSummary
		uploads string
	)
	err := s.withRetry(ctx, func() error {
		var rerr error
		summary, uploads, rerr = s.resolver.Resolve(ctx, channelID)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	session := newSession(channelID, summary)
	s.logger.Info("catalog fetch started",
		slog.String("session", session.ID().String()),
		slog.String("channel", string(channelID)),
		slog.String("uploads", uploads))

	go s.run(ctx, session, uploads)

	return session, nil
}

func (s *Service) run(ctx context.Context, session *Session, uploadsID string) {
	batches := make(chan []model.VideoID, detailWorkers)
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(batches)
		token := ""
		for {
			var page model.CatalogPage
			err := s.withRetry(ctx, func() error {
				var perr error
				page, perr = s.lister.Page(ctx, uploadsID, token, pageSize)
				return perr
			})
			if err != nil {
				return &PageError{Stage: "page", Token: token, Err: err}
			}
			s.logger.Info("fetched catalog page",
				slog.String("session", session.ID().String()),
				slog.Int("count", len(page.Items)))

			for _, ids := range chunk(page.Items, pageSize) {
				select {
				case batches <- ids:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if page.NextToken == "" {
				return nil
			}
			token = page.NextToken
		}
	})

	for i := 0; i < detailWorkers; i++ {
		group.Go(func() error {
			for ids := range batches {
				var records []model.VideoRecord
				err := s.withRetry(ctx, func() error {
					var derr error
					records, derr = s.details.Details(ctx, ids)
					return derr
				})
				if err != nil {
					return &PageError{Stage: "details", Err: err}
				}
				for _, record := range records {
					if !session.add(record) {
						continue
					}
					session.notify(record)
				}
			}
			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		s.logger.Error("catalog fetch ended early",
			slog.String("session", session.ID().String()),
			slog.String("err", err.Error()))
	} else {
		s.logger.Info("catalog fetch complete",
			slog.String("session", session.ID().String()),
			slog.Int("count", len(session.Records())))
	}
	session.finish(err)
}

func (s *Service) withRetry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackoff(), maxAttempts-1), ctx)
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

// retryable treats transport errors, quota pushback and server errors
// as transient. Client errors and cancellation are permanent.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrChannelNotFound) || errors.Is(err, ErrUploadsNotFound) {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}

func chunk(ids []model.VideoID, size int) [][]model.VideoID {
	var chunks [][]model.VideoID
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}
