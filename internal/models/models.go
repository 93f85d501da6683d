package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	DisplayUsername        *string   `json:"displayUsername" db:"display_username"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

// Alias is the pseudonymous identity content is authored through.
// RotationEnabled is persisted but no code path rotates aliases yet.
type Alias struct {
	ID              string    `json:"id" db:"alias_id"`
	UserID          string    `json:"userId" db:"user_id"`
	Name            string    `json:"alias" db:"name"`
	IsPrimary       bool      `json:"isPrimary" db:"is_primary"`
	RotationEnabled bool      `json:"rotationEnabled" db:"rotation_enabled"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

type Thread struct {
	ThreadID  string    `json:"threadId" db:"thread_id"`
	AliasID   string    `json:"aliasId" db:"alias_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Slug      string    `json:"slug" db:"slug"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Post struct {
	PostID          string         `json:"postId" db:"post_id"`
	ThreadID        string         `json:"threadId" db:"thread_id"`
	AliasID         string         `json:"aliasId" db:"alias_id"`
	Content         string         `json:"content" db:"content"`
	IsSensitive     bool           `json:"isSensitive" db:"is_sensitive"`
	ContentWarnings pq.StringArray `json:"contentWarnings" db:"content_warnings"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
	DeletedAt       *time.Time     `json:"-" db:"deleted_at"`
	Images          []Image        `json:"images" db:"-"`
}

type Comment struct {
	CommentID   string     `json:"commentId" db:"comment_id"`
	PostID      string     `json:"postId" db:"post_id"`
	AliasID     string     `json:"aliasId" db:"alias_id"`
	ParentID    *string    `json:"parentId" db:"parent_id"`
	Content     string     `json:"content" db:"content"`
	IsAnonymous bool       `json:"isAnonymous" db:"is_anonymous"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

type Image struct {
	ImageID    string    `json:"imageId" db:"image_id"`
	PostID     string    `json:"postId" db:"post_id"`
	ImageURL   string    `json:"imageUrl" db:"image_url"`
	ObjectName string    `json:"-" db:"object_name"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Author carries the two candidate names joined from alias and users.
// Both may be NULL because of the left joins.
type Author struct {
	AliasName       *string `json:"-" db:"alias_name"`
	DisplayUsername *string `json:"-" db:"display_username"`
}

type ThreadView struct {
	Thread
	Author
}

type PostView struct {
	Post
	Author
	ThreadTitle    *string `db:"thread_title"`
	ThreadCategory *string `db:"thread_category"`
}

// CommentView also carries the parent post's sensitive flag, which hides
// commenters behind their alias too.
type CommentView struct {
	Comment
	Author
	ThreadCategory  *string `db:"thread_category"`
	PostIsSensitive bool    `db:"post_is_sensitive"`
}

type Stats struct {
	Aliases  int `json:"aliases" db:"aliases"`
	Threads  int `json:"threads" db:"threads"`
	Posts    int `json:"posts" db:"posts"`
	Comments int `json:"comments" db:"comments"`
}
