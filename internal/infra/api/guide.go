package api

import (
	"context"
	"time"

	"github.com/scapet/scapet-go/internal/domain/guide"
	"github.com/scapet/scapet-go/internal/domain/questionnaire"
)

// defaultGuideTimeout accommodates long-running generation on the server.
const defaultGuideTimeout = 5 * time.Minute

// GuideAPI covers the guide generation endpoint.
type GuideAPI struct {
	client  *Client
	timeout time.Duration
}

// NewGuideAPI builds the guide surface with its per-call long timeout.
func NewGuideAPI(client *Client, timeout time.Duration) *GuideAPI {
	if timeout <= 0 {
		timeout = defaultGuideTimeout
	}
	return &GuideAPI{client: client, timeout: timeout}
}

// GenerateGuide submits a transformed questionnaire and waits for the
// itinerary. The call overrides the transport default timeout; generation
// regularly outlives it.
func (g *GuideAPI) GenerateGuide(ctx context.Context, req questionnaire.GuideRequest) (guide.Itinerary, error) {
	var itinerary guide.Itinerary
	err := g.client.Post(ctx, "/generate-guide", req, &itinerary, WithTimeout(g.timeout))
	return itinerary, err
}
