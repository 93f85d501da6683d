package service

import (
	"anonforum/internal/alias"
	"anonforum/internal/config"
	"anonforum/internal/mail"
	"anonforum/internal/repository"
	"anonforum/internal/storage"
)

type Service struct {
	User    UserService
	Auth    AuthService
	Alias   AliasService
	Thread  ThreadService
	Post    PostService
	Comment CommentService
	Stats   StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, mailer mail.Sender) *Service {
	aliases := NewAliasService(rep.Alias, alias.NewGenerator(nil))

	return &Service{
		User:    NewUserService(rep.User),
		Auth:    NewAuthService(rep.User, aliases, mailer, cfg),
		Alias:   aliases,
		Thread:  NewThreadService(rep.Thread, rep.Alias),
		Post:    NewPostService(rep.Post, rep.Thread, rep.Alias, rep.Image, storage),
		Comment: NewCommentService(rep.Comment, rep.Post, rep.Alias),
		Stats:   NewStatsService(rep.Stats),
	}
}
