package services

import (
	"encoding/xml"
	"html"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gorilla/feeds"
	"github.com/microcosm-cc/bluemonday"

	"goblog/repositories"
)

const (
	feedItemCount    = 5
	feedPreviewWords = 30

	sitemapChangeFreq = "weekly"
	sitemapPriority   = 0.9
)

type FeedService interface {
	LatestPostsRSS() (string, error)
	Sitemap() ([]byte, error)
}

type feedService struct {
	postRepo repositories.PostRepository
	siteName string
	baseURL  string
	strip    *bluemonday.Policy
}

func NewFeedService(postRepo repositories.PostRepository, siteName, baseURL string) FeedService {
	return &feedService{
		postRepo: postRepo,
		siteName: siteName,
		baseURL:  baseURL,
		strip:    bluemonday.StrictPolicy(),
	}
}

// LatestPostsRSS renders the most recent published posts as an RSS feed.
// Item descriptions are a short plain-text preview of the body.
func (s *feedService) LatestPostsRSS() (string, error) {
	posts, err := s.postRepo.LatestPublished(feedItemCount)
	if err != nil {
		return "", err
	}

	feed := &feeds.Feed{
		Title:       s.siteName,
		Link:        &feeds.Link{Href: s.baseURL + "/blog/posts"},
		Description: "New posts of " + s.siteName + ".",
	}

	for i := range posts {
		post := &posts[i]
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: s.baseURL + post.URL()},
			Description: s.preview(post.Body),
			Author:      &feeds.Author{Name: post.Author.Username},
			Created:     post.PublicationDate,
		})
	}

	return feed.ToRss()
}

// preview renders the markdown body, strips every tag and truncates the
// remaining text to a fixed word count.
func (s *feedService) preview(body string) string {
	rendered := markdown.ToHTML([]byte(body), nil, nil)
	text := html.UnescapeString(s.strip.Sanitize(string(rendered)))

	words := strings.Fields(text)
	if len(words) > feedPreviewWords {
		return strings.Join(words[:feedPreviewWords], " ") + " …"
	}
	return strings.Join(words, " ")
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap lists every published post with its last-modified timestamp for
// crawlers.
func (s *feedService) Sitemap() ([]byte, error) {
	posts, err := s.postRepo.AllPublished()
	if err != nil {
		return nil, err
	}

	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for i := range posts {
		post := &posts[i]
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + post.URL(),
			LastMod:    post.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: sitemapChangeFreq,
			Priority:   sitemapPriority,
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
