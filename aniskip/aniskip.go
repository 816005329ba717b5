// Package aniskip fetches opening and ending ranges from the AniSkip API and turns them into
// chapter marks.
package aniskip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/constant"
	"github.com/cuelink/cuelink/filesystem"
	"github.com/cuelink/cuelink/log"
	"github.com/cuelink/cuelink/util"
	"github.com/cuelink/cuelink/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const DefaultBaseURL = "https://api.aniskip.com/v1/skip-times"

// Kind of a skippable segment.
type Kind string

const (
	Opening Kind = "op"
	Ending  Kind = "ed"
)

func (k Kind) Title() string {
	switch k {
	case Opening:
		return "Opening"
	case Ending:
		return "Ending"
	default:
		return string(k)
	}
}

// Segment is a skippable range in seconds.
type Segment struct {
	Kind  Kind    `json:"kind"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type response struct {
	Found   bool     `json:"found"`
	Results []result `json:"results"`
}

type result struct {
	Interval struct {
		StartTime float64 `json:"start_time"`
		EndTime   float64 `json:"end_time"`
	} `json:"interval"`
	SkipType string `json:"skip_type"`
}

type cacheData struct {
	Segments map[string][]Segment `json:"segments"`
}

// Client talks to AniSkip. Responses are cached on disk when a cache is attached.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	mu    sync.Mutex
	cache *gache.Cache[*cacheData]
}

// New returns a client for the public API, caching under where.Aniskip().
func New() *Client {
	c := NewClient(DefaultBaseURL)
	c.cache = gache.New[*cacheData](&gache.Options{
		Path:       where.Aniskip(),
		Lifetime:   time.Hour * 24 * 7,
		FileSystem: &filesystem.GacheFs{},
	})
	return c
}

// NewClient returns an uncached client for baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Segments returns the opening and ending of an episode. An episode AniSkip knows nothing
// about yields no segments and no error.
func (c *Client) Segments(ctx context.Context, malID, episode int) ([]Segment, error) {
	id := fmt.Sprintf("%d/%d", malID, episode)

	if cached, ok := c.cached(id).Get(); ok {
		return cached, nil
	}

	url := fmt.Sprintf("%s/%s?types=op&types=ed", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aniskip request: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("aniskip: unexpected status %d", resp.StatusCode)
	}

	var data response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode aniskip response: %w", err)
	}

	var segments []Segment
	if data.Found {
		segments = lo.FilterMap(data.Results, func(r result, _ int) (Segment, bool) {
			kind := Kind(r.SkipType)
			if kind != Opening && kind != Ending {
				return Segment{}, false
			}
			if r.Interval.EndTime <= r.Interval.StartTime {
				return Segment{}, false
			}
			return Segment{Kind: kind, Start: r.Interval.StartTime, End: r.Interval.EndTime}, true
		})
	}

	if err := c.store(id, segments); err != nil {
		log.Warnf("aniskip: caching %s: %v", id, err)
	}
	return segments, nil
}

func (c *Client) cached(id string) mo.Option[[]Segment] {
	if c.cache == nil {
		return mo.None[[]Segment]()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.cache.Get()
	if err != nil || expired || data == nil {
		return mo.None[[]Segment]()
	}

	segments, ok := data.Segments[id]
	if !ok {
		return mo.None[[]Segment]()
	}
	return mo.Some(segments)
}

func (c *Client) store(id string, segments []Segment) error {
	if c.cache == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.cache.Get()
	if err != nil {
		return err
	}
	if expired || data == nil {
		data = &cacheData{Segments: make(map[string][]Segment)}
	}
	data.Segments[id] = segments
	return c.cache.Set(data)
}

// Marks converts segments to chapter marks whose permalinks are built on permalink.
func Marks(segments []Segment, permalink string) []*chapter.Mark {
	return lo.Map(segments, func(s Segment, _ int) *chapter.Mark {
		return chapter.NewMark(s.Start, s.End, s.Kind.Title(), permalink)
	})
}

// Merge returns marks and extra together, ordered by start. Marks starting at the same
// second keep marks ahead of extra.
func Merge(marks, extra []*chapter.Mark) []*chapter.Mark {
	merged := append(append([]*chapter.Mark{}, marks...), extra...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})
	return merged
}
