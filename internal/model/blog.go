package model

import "time"

type Post struct {
	Meta
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	Published   *bool      `json:"published"`
	PublishDate *time.Time `json:"publish_date"`
}

func (p Post) WithMetadata(m Meta) Post {
	p.Meta = m
	return p
}

type PostInput struct {
	Title       *string    `json:"title" binding:"required"`
	Content     *string    `json:"content" binding:"required"`
	Author      *string    `json:"author" binding:"required"`
	Published   *bool      `json:"published"`
	PublishDate *time.Time `json:"publish_date"`
}

func (in PostInput) Record() Post {
	return Post{
		Title:       value(in.Title),
		Content:     value(in.Content),
		Author:      value(in.Author),
		Published:   in.Published,
		PublishDate: in.PublishDate,
	}
}

type PostPatch struct {
	Title       Optional[string]     `json:"title"`
	Content     Optional[string]     `json:"content"`
	Author      Optional[string]     `json:"author"`
	Published   Optional[*bool]      `json:"published"`
	PublishDate Optional[*time.Time] `json:"publish_date"`
}

func (p PostPatch) Apply(post Post) Post {
	post.Title = p.Title.Or(post.Title)
	post.Content = p.Content.Or(post.Content)
	post.Author = p.Author.Or(post.Author)
	post.Published = p.Published.Or(post.Published)
	post.PublishDate = p.PublishDate.Or(post.PublishDate)
	return post
}

type Comment struct {
	Meta
	PostID   string `json:"post_id"`
	Author   string `json:"author"`
	Email    string `json:"email"`
	Content  string `json:"content"`
	Approved *bool  `json:"approved"`
}

func (c Comment) WithMetadata(m Meta) Comment {
	c.Meta = m
	return c
}

type CommentInput struct {
	PostID   *string `json:"post_id" binding:"required"`
	Author   *string `json:"author" binding:"required"`
	Email    *string `json:"email" binding:"required,email"`
	Content  *string `json:"content" binding:"required"`
	Approved *bool   `json:"approved"`
}

func (in CommentInput) Record() Comment {
	return Comment{
		PostID:   value(in.PostID),
		Author:   value(in.Author),
		Email:    value(in.Email),
		Content:  value(in.Content),
		Approved: in.Approved,
	}
}

type CommentPatch struct {
	PostID   Optional[string] `json:"post_id"`
	Author   Optional[string] `json:"author"`
	Email    Optional[string] `json:"email"`
	Content  Optional[string] `json:"content"`
	Approved Optional[*bool]  `json:"approved"`
}

func (p CommentPatch) Apply(c Comment) Comment {
	c.PostID = p.PostID.Or(c.PostID)
	c.Author = p.Author.Or(c.Author)
	c.Email = p.Email.Or(c.Email)
	c.Content = p.Content.Or(c.Content)
	c.Approved = p.Approved.Or(c.Approved)
	return c
}

type Category struct {
	Meta
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (c Category) WithMetadata(m Meta) Category {
	c.Meta = m
	return c
}

type CategoryInput struct {
	Name        *string `json:"name" binding:"required"`
	Description *string `json:"description"`
}

func (in CategoryInput) Record() Category {
	return Category{
		Name:        value(in.Name),
		Description: in.Description,
	}
}

type CategoryPatch struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[*string] `json:"description"`
}

func (p CategoryPatch) Apply(c Category) Category {
	c.Name = p.Name.Or(c.Name)
	c.Description = p.Description.Or(c.Description)
	return c
}
