package entities

import (
	"time"
)

// Catalog entities map onto the Calibre library database (metadata.db).
// The schema is owned by Calibre itself: the service opens it read-only and
// never migrates or mutates these tables. Association columns in the link
// tables use Calibre's singular naming (book, author, tag, ...), hence the
// explicit joinForeignKey/joinReferences tags.

type Book struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `json:"title"`
	Sort         string     `json:"sort"`
	Timestamp    time.Time  `json:"timestamp"`
	PubDate      *time.Time `gorm:"column:pubdate" json:"pubdate"`
	SeriesIndex  float64    `gorm:"column:series_index" json:"-"`
	AuthorSort   string     `gorm:"column:author_sort" json:"-"`
	ISBN         string     `gorm:"column:isbn" json:"isbn"`
	Path         string     `json:"path"`
	HasCover     bool       `gorm:"column:has_cover" json:"has_cover"`
	UUID         string     `gorm:"column:uuid" json:"uuid"`
	LastModified time.Time  `gorm:"column:last_modified" json:"-"`

	Authors    []Author    `gorm:"many2many:books_authors_link;joinForeignKey:book;joinReferences:author" json:"authors,omitempty"`
	Tags       []Tag       `gorm:"many2many:books_tags_link;joinForeignKey:book;joinReferences:tag" json:"tags,omitempty"`
	Series     []Series    `gorm:"many2many:books_series_link;joinForeignKey:book;joinReferences:series" json:"-"`
	Ratings    []Rating    `gorm:"many2many:books_ratings_link;joinForeignKey:book;joinReferences:rating" json:"ratings,omitempty"`
	Languages  []Language  `gorm:"many2many:books_languages_link;joinForeignKey:book;joinReferences:lang_code" json:"languages,omitempty"`
	Publishers []Publisher `gorm:"many2many:books_publishers_link;joinForeignKey:book;joinReferences:publisher" json:"publishers,omitempty"`
	Formats    []Format    `gorm:"foreignKey:BookID" json:"formats,omitempty"`
	Comments   []Comment   `gorm:"foreignKey:BookID" json:"-"`
}

type Author struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
	Sort string `json:"sort"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

type Series struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
	Sort string `json:"-"`
}

type Rating struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	Rating int  `json:"rating"`
}

type Language struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	LangCode string `gorm:"column:lang_code" json:"lang_code"`
}

type Publisher struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

// Format is a row of Calibre's "data" table: one physical file per book/format.
type Format struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	BookID           uint   `gorm:"column:book" json:"-"`
	Format           string `json:"format"`
	UncompressedSize int64  `gorm:"column:uncompressed_size" json:"uncompressed_size"`
	Name             string `json:"-"`
}

type Comment struct {
	ID     uint   `gorm:"primaryKey"`
	BookID uint   `gorm:"column:book"`
	Text   string `gorm:"type:text"`
}

func (Book) TableName() string      { return "books" }
func (Author) TableName() string    { return "authors" }
func (Tag) TableName() string       { return "tags" }
func (Series) TableName() string    { return "series" }
func (Rating) TableName() string    { return "ratings" }
func (Language) TableName() string  { return "languages" }
func (Publisher) TableName() string { return "publishers" }
func (Format) TableName() string    { return "data" }
func (Comment) TableName() string   { return "comments" }
