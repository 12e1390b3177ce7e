package exporters

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/bookshelf/internal/models"
)

// MarkdownExporter writes one markdown note per book, with YAML frontmatter
// describing the book followed by its quotes.
type MarkdownExporter struct {
	Dir string
}

func NewMarkdownExporter(dir string) *MarkdownExporter {
	return &MarkdownExporter{Dir: dir}
}

type frontmatter struct {
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author,omitempty"`
	Genre    string   `yaml:"genre,omitempty"`
	Status   string   `yaml:"status"`
	ReadDate string   `yaml:"read_date,omitempty"`
	Rating   int      `yaml:"rating"`
	Quotes   int      `yaml:"quotes"`
	Tags     []string `yaml:"tags"`
}

// GenerateMarkdown renders a book and its quotes as a markdown note.
func GenerateMarkdown(book models.Book) (string, error) {
	meta := frontmatter{
		Title:  book.Title,
		Status: string(book.Status),
		Rating: book.Rating,
		Quotes: len(book.Quotes),
		Tags:   []string{"books", "quotes"},
	}
	if book.Author != nil {
		meta.Author = book.Author.Name
	}
	if book.Genre != nil {
		meta.Genre = book.Genre.Name
	}
	if !book.ReadDate.IsZero() {
		meta.ReadDate = book.ReadDate.Format("2006-01-02")
	}

	header, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", book.Title)

	if book.Memo != "" {
		fmt.Fprintf(&b, "%s\n\n", book.Memo)
	}
	if book.Thought != "" {
		fmt.Fprintf(&b, "**Thought:** %s\n\n", book.Thought)
	}

	if len(book.Quotes) > 0 {
		b.WriteString("## Quotes\n\n")
	}
	for _, q := range book.Quotes {
		fmt.Fprintf(&b, "### Page %d\n\n", q.Page)
		fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(q.Text, "\n", "\n> "))
		if q.Thought != "" {
			fmt.Fprintf(&b, "**Thought:** %s\n\n", q.Thought)
		}
	}

	return b.String(), nil
}

// ParseFrontmatter reads the frontmatter block back from a generated note.
func ParseFrontmatter(note []byte) (map[string]any, error) {
	rest, ok := bytes.CutPrefix(note, []byte("---\n"))
	if !ok {
		return nil, fmt.Errorf("note has no frontmatter")
	}
	header, _, ok := bytes.Cut(rest, []byte("\n---\n"))
	if !ok {
		return nil, fmt.Errorf("unterminated frontmatter")
	}
	var meta map[string]any
	if err := yaml.Unmarshal(header, &meta); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	return meta, nil
}

// FileName is the note name for book: its title made safe for file systems,
// suffixed with the id so equal titles do not collide.
func FileName(book models.Book) string {
	title := sanitizeTitle(book.Title)
	if title == "" {
		title = "untitled"
	}
	return fmt.Sprintf("%s-%d.md", title, book.ID)
}

// Export writes every book to Dir. A book that fails to export is counted
// and skipped.
func (e *MarkdownExporter) Export(books []models.Book) (ExportResult, error) {
	var result ExportResult

	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return result, fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, book := range books {
		content, err := GenerateMarkdown(book)
		if err == nil {
			err = os.WriteFile(filepath.Join(e.Dir, FileName(book)), []byte(content), 0644)
		}
		if err != nil {
			log.Printf("Failed to export book %d (%s): %v", book.ID, book.Title, err)
			result.BooksFailed++
			continue
		}
		result.BooksProcessed++
		result.QuotesProcessed += len(book.Quotes)
	}

	return result, nil
}
