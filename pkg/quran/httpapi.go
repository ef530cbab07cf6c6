package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultBaseURL is the public quran-api-id deployment the original data set
// comes from.
const DefaultBaseURL = "https://quran-api-id.vercel.app"

// Client fetches chapters from a quran-api-id compatible JSON API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (no trailing slash).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates an API client with a 30s request timeout by default.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire types mirror the upstream JSON: verses carry Arabic text, a Latin
// transliteration, an Indonesian translation, and a short commentary (tafsir).

type apiName struct {
	Short           string `json:"short"`
	Long            string `json:"long"`
	Transliteration struct {
		EN string `json:"en"`
		ID string `json:"id"`
	} `json:"transliteration"`
	Translation struct {
		EN string `json:"en"`
		ID string `json:"id"`
	} `json:"translation"`
}

type apiVerse struct {
	Number struct {
		InSurah int `json:"inSurah"`
	} `json:"number"`
	Text struct {
		Arab            string `json:"arab"`
		Transliteration struct {
			EN string `json:"en"`
		} `json:"transliteration"`
	} `json:"text"`
	Translation struct {
		ID string `json:"id"`
	} `json:"translation"`
	Tafsir struct {
		ID struct {
			Short string `json:"short"`
		} `json:"id"`
	} `json:"tafsir"`
}

type apiChapter struct {
	Number int        `json:"number"`
	Name   apiName    `json:"name"`
	Verses []apiVerse `json:"verses"`
}

type apiChapterEnvelope struct {
	Data apiChapter `json:"data"`
}

type apiIndexItem struct {
	Number         int     `json:"number"`
	Name           apiName `json:"name"`
	NumberOfVerses int     `json:"numberOfVerses"`
}

type apiIndexEnvelope struct {
	Data []apiIndexItem `json:"data"`
}

// LoadChapter fetches one chapter with all verse fields.
func (c *Client) LoadChapter(ctx context.Context, number int) (*Chapter, error) {
	if number < 1 || number > ChapterCount {
		return nil, fmt.Errorf("%w: %d", ErrNoChapter, number)
	}

	var env apiChapterEnvelope
	if err := c.getJSON(ctx, fmt.Sprintf("%s/surah/%d", c.baseURL, number), &env); err != nil {
		return nil, err
	}

	ch := &Chapter{
		Number: env.Data.Number,
		Name: ChapterName{
			Arabic:          env.Data.Name.Short,
			Transliteration: env.Data.Name.Transliteration.ID,
			Translation:     env.Data.Name.Translation.ID,
		},
		Verses: make([]Verse, 0, len(env.Data.Verses)),
	}
	for _, v := range env.Data.Verses {
		ch.Verses = append(ch.Verses, Verse{
			Position:        v.Number.InSurah,
			Arabic:          v.Text.Arab,
			Transliteration: v.Text.Transliteration.EN,
			Translation:     v.Translation.ID,
			Commentary:      v.Tafsir.ID.Short,
		})
	}
	if err := ch.Validate(); err != nil {
		return nil, fmt.Errorf("%w: chapter %d: %v", ErrDataUnavailable, number, err)
	}

	c.logger.Debug("chapter fetched", "chapter", number, "verses", len(ch.Verses))
	return ch, nil
}

// LoadChapterIndex fetches the chapter index.
func (c *Client) LoadChapterIndex(ctx context.Context) ([]ChapterInfo, error) {
	var env apiIndexEnvelope
	if err := c.getJSON(ctx, c.baseURL+"/surah", &env); err != nil {
		return nil, err
	}

	infos := make([]ChapterInfo, 0, len(env.Data))
	for _, item := range env.Data {
		infos = append(infos, ChapterInfo{
			Number: item.Number,
			Name: ChapterName{
				Arabic:          item.Name.Short,
				Transliteration: item.Name.Transliteration.ID,
				Translation:     item.Name.Translation.ID,
			},
			VerseCount: item.NumberOfVerses,
		})
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: empty chapter index", ErrDataUnavailable)
	}
	return infos, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: HTTP %d", ErrDataUnavailable, url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrDataUnavailable, url, err)
	}
	return nil
}
