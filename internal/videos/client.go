// Package videos wraps the video-search API used for moral stories and
// parenting content. Failures degrade to an empty list at the transport
// boundary; nothing downstream depends on results being present.
package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gamified-learning-service/internal/httpx"
)

const defaultBaseURL = "https://www.googleapis.com"

// Video is one search hit, shaped for direct rendering.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Channel      string `json:"channel"`
	PublishedAt  string `json:"publishedAt"`
}

// Client calls the video-search endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpx.NewClient(timeout),
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search looks up embeddable videos for query, biased toward language.
func (c *Client) Search(ctx context.Context, query, language string, maxResults int) ([]Video, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("video api key not configured")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("videoEmbeddable", "true")
	params.Set("relevanceLanguage", LanguageCode(language))
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + "/youtube/v3/search?" + params.Encode()

	resp, err := httpx.Do(ctx, c.http, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("video search: %w", err)
	}
	defer resp.Body.Close()

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode video search response: %w", err)
	}

	results := make([]Video, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results = append(results, Video{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			ThumbnailURL: item.Snippet.Thumbnails.High.URL,
			Channel:      item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}
	return results, nil
}

// LanguageCode maps the UI language names to search relevance codes,
// defaulting to English.
func LanguageCode(language string) string {
	switch strings.ToLower(language) {
	case "hindi":
		return "hi"
	case "telugu":
		return "te"
	case "tamil":
		return "ta"
	case "kannada":
		return "kn"
	default:
		return "en"
	}
}
