package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Harvester turns a source descriptor into raw candidates using the
// fetch strategy the descriptor selects.
type Harvester struct {
	fetcher *Fetcher
}

func NewHarvester(fetcher *Fetcher) *Harvester {
	return &Harvester{fetcher: fetcher}
}

func (h *Harvester) Run(ctx context.Context, config *Config) ([]Candidate, error) {
	timeout := time.Duration(config.Timeout) * time.Second

	switch config.Type {
	case "codeforces":
		data, err := h.fetcher.Run(ctx, config.URL, timeout, config.Charset)
		if err != nil {
			return nil, err
		}
		return parseCodeforces(data)
	case "atcoder":
		data, err := h.fetcher.Run(ctx, config.URL, timeout, config.Charset)
		if err != nil {
			return nil, err
		}
		return parseAtcoder(data, time.Now())
	case "html":
		return h.runHTML(ctx, config)
	case "rss":
		data, err := h.fetcher.Run(ctx, config.URL, timeout, config.Charset)
		if err != nil {
			return nil, err
		}
		return parseRSS(data)
	default:
		return nil, fmt.Errorf("unknown source type: %s", config.Type)
	}
}

// Codeforces contest.list API

type codeforcesResponse struct {
	Status string `json:"status"`
	Result []struct {
		ID               int    `json:"id"`
		Name             string `json:"name"`
		Phase            string `json:"phase"`
		StartTimeSeconds int64  `json:"startTimeSeconds"`
	} `json:"result"`
}

func parseCodeforces(data []byte) ([]Candidate, error) {
	var resp codeforcesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse Codeforces response: %w", err)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("Codeforces API status: %s", resp.Status)
	}

	var candidates []Candidate
	for _, contest := range resp.Result {
		if contest.Phase != "BEFORE" {
			continue
		}
		start := ""
		if contest.StartTimeSeconds > 0 {
			start = time.Unix(contest.StartTimeSeconds, 0).UTC().Format("2006-01-02")
		}
		candidates = append(candidates, Candidate{
			Title:     contest.Name,
			URL:       fmt.Sprintf("https://codeforces.com/contests/%d", contest.ID),
			Summary:   "Codeforces contest",
			StartDate: start,
			Deadline:  start, // registration closes when the round starts
		})
	}
	return candidates, nil
}

// AtCoder contests.json (kenkoooo mirror)

type atcoderContest struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	StartEpochSecond int64  `json:"start_epoch_second"`
}

func parseAtcoder(data []byte, now time.Time) ([]Candidate, error) {
	var contests []atcoderContest
	if err := json.Unmarshal(data, &contests); err != nil {
		return nil, fmt.Errorf("failed to parse AtCoder response: %w", err)
	}

	var candidates []Candidate
	for _, contest := range contests {
		if contest.StartEpochSecond <= now.Unix() {
			continue
		}
		start := time.Unix(contest.StartEpochSecond, 0).UTC().Format("2006-01-02")
		candidates = append(candidates, Candidate{
			Title:     contest.Title,
			URL:       fmt.Sprintf("https://atcoder.jp/contests/%s", contest.ID),
			Summary:   "AtCoder contest",
			StartDate: start,
			Deadline:  start,
		})
	}
	return candidates, nil
}
