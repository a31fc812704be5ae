package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/angkomuhtar/simple-api-express/helpers"
	"github.com/angkomuhtar/simple-api-express/models"
	"github.com/angkomuhtar/simple-api-express/packages"
)

const Banner = "User API - Technical test"

type handler struct {
	service   IService
	validator helpers.IValidator
}

func NewHandler(service IService) IHandler {
	return &handler{service: service, validator: helpers.NewValidator()}
}

func (h *handler) Ping(rw http.ResponseWriter, r *http.Request) {
	helpers.TextResponse(rw, http.StatusOK, Banner)
}

func (h *handler) ListUsers(rw http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		packages.Logrus("error", err)
		helpers.ApiResponse(rw, &helpers.APIResponse{
			StatCode:   http.StatusInternalServerError,
			ErrMessage: "Error",
			ErrDetails: err.Error(),
		})
		return
	}

	helpers.ApiResponse(rw, &helpers.APIResponse{
		StatCode: http.StatusOK,
		Success:  true,
		Message:  "get data successfull",
		Data:     users,
	})
}

func (h *handler) GetUser(rw http.ResponseWriter, r *http.Request) {
	user, ok := h.findUser(rw, r)
	if !ok {
		return
	}

	helpers.ApiResponse(rw, &helpers.APIResponse{
		StatCode: http.StatusOK,
		Success:  true,
		Message:  "get data by id successfull",
		Data:     user,
	})
}

func (h *handler) CreateUser(rw http.ResponseWriter, r *http.Request) {
	req, ok := h.bindUser(rw, r)
	if !ok {
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		h.persistenceError(rw, err)
		return
	}

	helpers.ApiResponse(rw, &helpers.APIResponse{
		StatCode: http.StatusCreated,
		Success:  true,
		Message:  "Store data successfull",
		Data:     user,
	})
}

func (h *handler) UpdateUser(rw http.ResponseWriter, r *http.Request) {
	user, ok := h.findUser(rw, r)
	if !ok {
		return
	}

	req, ok := h.bindUser(rw, r)
	if !ok {
		return
	}

	updated, err := h.service.UpdateUser(r.Context(), user, req)
	if err != nil {
		h.persistenceError(rw, err)
		return
	}

	helpers.ApiResponse(rw, &helpers.APIResponse{
		StatCode: http.StatusCreated,
		Success:  true,
		Message:  "Update data successfull",
		Data:     updated,
	})
}

func (h *handler) DeleteUser(rw http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		notFound(rw)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			notFound(rw)
			return
		}

		packages.Logrus("error", err)
		helpers.ApiResponse(rw, &helpers.APIResponse{
			StatCode:   http.StatusInternalServerError,
			ErrMessage: "Error",
			ErrDetails: err.Error(),
		})
		return
	}

	helpers.ApiResponse(rw, &helpers.APIResponse{
		StatCode: http.StatusOK,
		Success:  true,
		Message:  "User deleted",
	})
}

// findUser resolves the {id} route param. On a miss or a storage failure the
// response is already written and ok is false.
func (h *handler) findUser(rw http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := userID(r)
	if !ok {
		notFound(rw)
		return nil, false
	}

	user, err := h.service.GetUser(r.Context(), id)
	if errors.Is(err, ErrUserNotFound) {
		notFound(rw)
		return nil, false
	}

	if err != nil {
		packages.Logrus("error", err)
		helpers.ApiResponse(rw, &helpers.APIResponse{
			StatCode:   http.StatusInternalServerError,
			ErrMessage: "Error",
			ErrDetails: err.Error(),
		})
		return nil, false
	}

	return user, true
}

func (h *handler) bindUser(rw http.ResponseWriter, r *http.Request) (*models.UserRequest, bool) {
	binding, err := helpers.BindFields(rw, r, models.UserFields)
	if err != nil {
		h.bindError(rw, err)
		return nil, false
	}

	req := models.NewUserRequest(binding.Fields)

	violations, err := h.validator.Violations(req)
	if err != nil {
		h.bindError(rw, err)
		return nil, false
	}

	if err := binding.Check(models.UserFields, violations); err != nil {
		h.bindError(rw, err)
		return nil, false
	}

	return req, true
}

func (h *handler) bindError(rw http.ResponseWriter, err error) {
	var bindErr *helpers.BindError
	if errors.As(err, &bindErr) && bindErr.StatCode != http.StatusBadRequest {
		helpers.ApiResponse(rw, &helpers.APIResponse{StatCode: bindErr.StatCode, ErrMessage: bindErr.Message})
		return
	}

	helpers.ApiResponse(rw, &helpers.APIResponse{
		StatCode:   http.StatusBadRequest,
		ErrMessage: "Error",
		ErrDetails: err.Error(),
	})
}

func (h *handler) persistenceError(rw http.ResponseWriter, err error) {
	if errors.Is(err, ErrUserNotFound) {
		notFound(rw)
		return
	}

	packages.Logrus("error", err)

	var details interface{} = err.Error()

	var constraintErr *models.ConstraintError
	if errors.As(err, &constraintErr) {
		details = constraintErr.Errors
	}

	helpers.ApiResponse(rw, &helpers.APIResponse{
		StatCode:   http.StatusBadRequest,
		ErrMessage: "Error",
		ErrDetails: details,
	})
}

func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

func notFound(rw http.ResponseWriter) {
	helpers.ApiResponse(rw, &helpers.APIResponse{
		StatCode: http.StatusNotFound,
		Message:  ErrUserNotFound.Error(),
	})
}
