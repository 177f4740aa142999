package blog

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	Title       string   `yaml:"title"`
	Summary     string   `yaml:"summary"`
	Author      string   `yaml:"author"`
	HeroImage   string   `yaml:"hero_image"`
	Tags        []string `yaml:"tags"`
	PublishedAt string   `yaml:"published_at"`
	UpdatedAt   string   `yaml:"updated_at"`
}

// readMarkdown parses one local post file. The slug is the file name
// without extension.
func (c *Client) readMarkdown(path string) (Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Post{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Post{}, fmt.Errorf("blog: parse front matter %s: %w", path, err)
		}
	}
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(body), &buf); err != nil {
		return Post{}, fmt.Errorf("blog: render %s: %w", path, err)
	}
	slug := strings.TrimSuffix(filepath.Base(path), ".md")
	title := strings.TrimSpace(front.Title)
	if title == "" {
		title = prettifySlug(slug)
	}
	post := Post{
		Slug:         strings.ToLower(slug),
		Title:        title,
		Summary:      strings.TrimSpace(front.Summary),
		Body:         template.HTML(c.policy.Sanitize(buf.String())),
		Author:       strings.TrimSpace(front.Author),
		HeroImageURL: strings.TrimSpace(front.HeroImage),
		Tags:         front.Tags,
		PublishedAt:  parseTime(front.PublishedAt),
		UpdatedAt:    parseTime(front.UpdatedAt),
	}
	if post.UpdatedAt.IsZero() {
		if info, err := os.Stat(path); err == nil {
			post.UpdatedAt = info.ModTime()
		}
	}
	return post, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\uFEFF")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
