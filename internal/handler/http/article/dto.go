// Package article provides HTTP handlers for article-related endpoints:
// the filtered, paginated listing and the single-article detail view.
package article

import (
	"time"

	"news-dashboard/internal/repository"
)

// SourceDTO represents the embedded source record in article responses.
type SourceDTO struct {
	ID          int64  `json:"id" example:"1"`
	SourceID    string `json:"source_id" example:"bbc-news"`
	Name        string `json:"name" example:"BBC News"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty" example:"https://www.bbc.co.uk/news"`
	Country     string `json:"country,omitempty" example:"us"`
	Language    string `json:"language,omitempty" example:"en"`
}

// DTO represents the JSON structure for article data transfer.
// Content is only populated on the detail endpoint.
type DTO struct {
	ID           int64      `json:"id" example:"1"`
	SourceName   string     `json:"source_name" example:"BBC News"`
	Author       string     `json:"author,omitempty" example:"Jane Smith"`
	Title        string     `json:"title" example:"Markets rally on rate cut hopes"`
	Description  string     `json:"description,omitempty"`
	URL          string     `json:"url" example:"https://example.com/article/1"`
	URLToImage   string     `json:"url_to_image,omitempty"`
	PublishedAt  time.Time  `json:"published_at" example:"2025-10-26T10:00:00Z"`
	Content      string     `json:"content,omitempty"`
	Country      string     `json:"country,omitempty" example:"us"`
	CategoryName string     `json:"category,omitempty" example:"Business"`
	Source       *SourceDTO `json:"source,omitempty"`
	CreatedAt    time.Time  `json:"created_at" example:"2025-10-26T12:00:00Z"`
}

// toDTO maps a repository row to its response shape.
func toDTO(item repository.ArticleWithRefs) DTO {
	out := DTO{
		ID:           item.Article.ID,
		SourceName:   item.Article.SourceName,
		Author:       item.Article.Author,
		Title:        item.Article.Title,
		Description:  item.Article.Description,
		URL:          item.Article.URL,
		URLToImage:   item.Article.URLToImage,
		PublishedAt:  item.Article.PublishedAt,
		Content:      item.Article.Content,
		Country:      item.Article.Country,
		CategoryName: item.CategoryName,
		CreatedAt:    item.Article.CreatedAt,
	}
	if item.Source != nil {
		out.Source = &SourceDTO{
			ID:          item.Source.ID,
			SourceID:    item.Source.SourceID,
			Name:        item.Source.Name,
			Description: item.Source.Description,
			URL:         item.Source.URL,
			Country:     item.Source.Country,
			Language:    item.Source.Language,
		}
	}
	return out
}
