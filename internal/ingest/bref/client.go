package bref

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fortuna/scorebot/internal/schedule"
)

// BaseURL for Baseball-Reference
const BaseURL = "https://www.baseball-reference.com"

// PageCache stores raw schedule pages between fetches.
type PageCache interface {
	GetPage(ctx context.Context, key string) (string, bool, error)
	SetPage(ctx context.Context, key string, html string) error
}

// Client serves season logs scraped from Baseball-Reference team schedule
// pages. It implements schedule.Source.
type Client struct {
	baseURL string
	fetcher PageFetcher
	cache   PageCache
}

// NewClient creates a schedule client. cache may be nil.
func NewClient(baseURL string, fetcher PageFetcher, cache PageCache) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		cache:   cache,
	}
}

// ScheduleURL builds the schedule-and-results page URL for a team season.
func (c *Client) ScheduleURL(year int, teamAbbrev string) string {
	return fmt.Sprintf("%s/teams/%s/%d-schedule-scores.shtml", c.baseURL, teamAbbrev, year)
}

// Fetch returns the team's season log. A missing page or a page without a
// schedule table yields an empty table rather than an error.
func (c *Client) Fetch(ctx context.Context, year int, teamAbbrev string) (*schedule.Table, error) {
	teamAbbrev = strings.ToUpper(teamAbbrev)
	empty := &schedule.Table{Team: teamAbbrev, Year: year}

	html, err := c.page(ctx, year, teamAbbrev)
	if errors.Is(err, ErrNotFound) {
		log.Printf("[bref] no schedule page for %s %d", teamAbbrev, year)
		return empty, nil
	}
	if err != nil {
		return nil, err
	}

	doc, err := ParseHTML(html)
	if err != nil {
		return nil, err
	}
	if !HasScheduleTable(doc) {
		log.Printf("[bref] schedule table missing for %s %d", teamAbbrev, year)
		return empty, nil
	}

	return ParseSchedule(doc, teamAbbrev, year), nil
}

func (c *Client) page(ctx context.Context, year int, teamAbbrev string) (string, error) {
	key := fmt.Sprintf("bref:schedule:%s:%d", teamAbbrev, year)

	if c.cache != nil {
		html, ok, err := c.cache.GetPage(ctx, key)
		if err != nil {
			log.Printf("[bref] cache read failed for %s: %v", key, err)
		} else if ok {
			return html, nil
		}
	}

	html, err := c.fetcher.FetchPage(ctx, c.ScheduleURL(year, teamAbbrev))
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.SetPage(ctx, key, html); err != nil {
			log.Printf("[bref] cache write failed for %s: %v", key, err)
		}
	}
	return html, nil
}
