package handlers

import (
	"anonforum/internal/config"
	"anonforum/internal/service"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	UserService    service.UserService
	AuthService    service.AuthService
	AliasService   service.AliasService
	ThreadService  service.ThreadService
	PostService    service.PostService
	CommentService service.CommentService
	StatsService   service.StatsService
	DB             HealthChecker
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, db HealthChecker, config *config.Config) *Handlers {
	return &Handlers{
		UserService:    service.User,
		AuthService:    service.Auth,
		AliasService:   service.Alias,
		ThreadService:  service.Thread,
		PostService:    service.Post,
		CommentService: service.Comment,
		StatsService:   service.Stats,
		DB:             db,
		Cfg:            config,
		Validate:       NewValidator(),
	}
}

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
