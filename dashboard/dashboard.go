package dashboard

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/network"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentFetches = 4

// Card is one headline count. Err is set when its endpoint failed; the
// other cards are still shown.
type Card struct {
	Title string
	Count int
	Err   error
}

type Overview struct {
	Cards      []Card
	Network    *network.Stats
	NetworkErr error
	FetchedAt  time.Time
}

type Service struct {
	client  *api.Client
	network *network.Service
	nowFunc func() time.Time
}

func NewService(client *api.Client) *Service {
	return &Service{client: client, network: network.NewService(client), nowFunc: time.Now}
}

var cardSources = []struct {
	title string
	path  string
}{
	{"Users", api.Users},
	{"Organizations", api.Organizations},
	{"Roles", api.Roles},
	{"Customers", api.Customers},
}

// Overview fetches every card concurrently. Only cancellation of ctx fails
// the whole overview.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{Cards: make([]Card, len(cardSources))}

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, src := range cardSources {
		out.Cards[i].Title = src.title
		g.Go(func() error {
			count, err := s.count(ctx, src.path)
			out.Cards[i].Count, out.Cards[i].Err = count, err
			if err != nil {
				log.Warn().Err(err).Str("card", src.title).Msg("dashboard card failed")
			}
			return nil
		})
	}
	g.Go(func() error {
		out.Network, out.NetworkErr = s.network.Stats(ctx)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out.FetchedAt = s.nowFunc()
	return out, nil
}

// count reads the collection size from a single-item page.
func (s *Service) count(ctx context.Context, path string) (int, error) {
	page, err := api.List[json.RawMessage](ctx, s.client, path, url.Values{"page_size": {"1"}})
	if err != nil {
		return 0, err
	}
	return page.Count, nil
}
