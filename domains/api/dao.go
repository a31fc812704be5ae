package main

import (
	"context"
	"net/http"

	"github.com/angkomuhtar/simple-api-express/models"
)

type (
	IHandler interface {
		Ping(rw http.ResponseWriter, r *http.Request)
		ListUsers(rw http.ResponseWriter, r *http.Request)
		GetUser(rw http.ResponseWriter, r *http.Request)
		CreateUser(rw http.ResponseWriter, r *http.Request)
		UpdateUser(rw http.ResponseWriter, r *http.Request)
		DeleteUser(rw http.ResponseWriter, r *http.Request)
	}

	IService interface {
		ListUsers(ctx context.Context, name string) ([]models.User, error)
		GetUser(ctx context.Context, id int64) (*models.User, error)
		CreateUser(ctx context.Context, req *models.UserRequest) (*models.User, error)
		UpdateUser(ctx context.Context, user *models.User, req *models.UserRequest) (*models.User, error)
		DeleteUser(ctx context.Context, id int64) error
	}
)
