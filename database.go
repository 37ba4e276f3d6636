package main

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"

	"jekyll2astro/jekyll"
)

// Row is a published post as stored in a WordPress database.
type Row struct {
	ID            int    `db:"ID"`
	Name          string `db:"name"`
	Title         string `db:"title"`
	PublishedDate string `db:"published_date"`
	UpdatedDate   string `db:"updated_date"`
	Content       string `db:"content"`
}

// ConnectDB establishes a connection to the MySQL database. Dates are scanned
// as text so they go through the same parser as frontmatter dates.
func ConnectDB(host, port, user, password, dbName string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=false",
		user, password, host, port, dbName,
	)
	return sqlx.Connect("mysql", dsn)
}

// FetchRows retrieves all published posts, newest first.
func FetchRows(db *sqlx.DB) ([]Row, error) {
	query := `
        SELECT
          ID,
          post_name     AS name,
          post_title    AS title,
          post_date     AS published_date,
          post_modified AS updated_date,
          post_content  AS content
        FROM wp_posts
        WHERE
          post_type   = 'post'
          AND post_status = 'publish'
        ORDER BY post_date DESC;
    `

	var rows []Row
	if err := db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("query execution error: %w", err)
	}

	return rows, nil
}

// FetchTerms retrieves the names of a post's terms in one taxonomy
// ("post_tag" or "category").
func FetchTerms(db *sqlx.DB, postID int, taxonomy string) ([]string, error) {
	var terms []string
	query := `
		SELECT t.name
		FROM wp_terms t
		INNER JOIN wp_term_taxonomy tt ON t.term_id = tt.term_id
		INNER JOIN wp_term_relationships tr ON tt.term_taxonomy_id = tr.term_taxonomy_id
		WHERE tr.object_id = ?
		AND tt.taxonomy = ?;
	`
	if err := db.Select(&terms, query, postID, taxonomy); err != nil {
		return nil, fmt.Errorf("error fetching %s terms for post %d: %w", taxonomy, postID, err)
	}
	return terms, nil
}

// ToEntry shapes a row the way jekyll-import would have written it to _posts:
// a "YYYY-MM-DD-name" slug with the full timestamp in the frontmatter.
func (r Row) ToEntry(collection string, tags, categories []string) Entry {
	name := r.Name
	if name == "" {
		name = slug.Make(r.Title)
	}

	data := jekyll.Frontmatter{
		jekyll.KeyTitle: r.Title,
		jekyll.KeyDate:  r.PublishedDate,
	}
	if r.UpdatedDate != "" && r.UpdatedDate != r.PublishedDate {
		if updated, ok := jekyll.ParseDateTime(r.UpdatedDate); ok {
			data["updatedDate"] = updated
		}
	}
	if len(tags) > 0 {
		data[jekyll.KeyTags] = tags
	}
	if len(categories) > 0 {
		data[jekyll.KeyCategories] = categories
	}

	prefix := r.PublishedDate
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}

	return Entry{
		Post: jekyll.Post{
			Slug:       prefix + "-" + name,
			Collection: collection,
			Data:       data,
		},
		Body:   r.Content,
		Format: FormatHTML,
		Source: fmt.Sprintf("wp_posts#%d", r.ID),
	}
}

// LoadDatabaseEntries fetches published posts with their tags and categories.
// Taxonomy lookups that fail are reported in errs; the post is still returned.
func LoadDatabaseEntries(db *sqlx.DB, collection string) (entries []Entry, errs []error, err error) {
	rows, err := FetchRows(db)
	if err != nil {
		return nil, nil, err
	}

	for _, r := range rows {
		tags, tagErr := FetchTerms(db, r.ID, "post_tag")
		if tagErr != nil {
			errs = append(errs, tagErr)
		}
		cats, catErr := FetchTerms(db, r.ID, "category")
		if catErr != nil {
			errs = append(errs, catErr)
		}
		entries = append(entries, r.ToEntry(collection, tags, cats))
	}

	return entries, errs, nil
}
