package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/adamanr/departments_service/internal/apperrors"
	"github.com/adamanr/departments_service/internal/controllers"
	"github.com/adamanr/departments_service/internal/entity"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

type Server struct {
	deps        *controllers.Dependens
	Controllers *controllers.Controllers
}

func NewServer(deps *controllers.Dependens) *Server {
	return &Server{
		deps:        deps,
		Controllers: controllers.NewControllers(deps),
	}
}

// GetDepartments lists departments filtered by the id and name query parameters.
func (s Server) GetDepartments(w http.ResponseWriter, r *http.Request) {
	var params entity.GetDepartmentsParams

	ids, err := bindIDs(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	params.ID = ids

	if err = runtime.BindQueryParameter("form", true, false, "name", r.URL.Query(), &params.Name); err != nil {
		s.errorResponse(w, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid format for parameter name", err))
		return
	}

	departments, err := s.Controllers.DepartmentController.GetDepartments(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, DepartmentsToResponse(departments))
}

func (s Server) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var form entity.DepartmentForm
	if err := decodeBody(r, &form); err != nil {
		s.errorResponse(w, err)
		return
	}

	message, err := s.Controllers.DepartmentController.CreateDepartment(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, message)
}

func (s Server) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var form entity.DepartmentForm
	if err := decodeBody(r, &form); err != nil {
		s.errorResponse(w, err)
		return
	}

	message, err := s.Controllers.DepartmentController.UpdateDepartment(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, message)
}

func (s Server) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	message, err := s.Controllers.DepartmentController.DeleteDepartment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, message)
}

// GetEmployees lists employees filtered by id and an inclusive birth date range.
func (s Server) GetEmployees(w http.ResponseWriter, r *http.Request) {
	var params entity.GetEmployeesParams

	ids, err := bindIDs(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	params.ID = ids

	if err = runtime.BindQueryParameter("form", true, false, "date_of_birth_start", r.URL.Query(), &params.DateOfBirthStart); err != nil {
		s.errorResponse(w, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid format for parameter date_of_birth_start", err))
		return
	}

	if err = runtime.BindQueryParameter("form", true, false, "date_of_birth_end", r.URL.Query(), &params.DateOfBirthEnd); err != nil {
		s.errorResponse(w, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid format for parameter date_of_birth_end", err))
		return
	}

	employees, err := s.Controllers.EmployeeController.GetEmployees(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, EmployeesToResponse(employees))
}

func (s Server) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var form entity.EmployeeForm
	if err := decodeBody(r, &form); err != nil {
		s.errorResponse(w, err)
		return
	}

	message, err := s.Controllers.EmployeeController.CreateEmployee(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, message)
}

func (s Server) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var form entity.EmployeeForm
	if err := decodeBody(r, &form); err != nil {
		s.errorResponse(w, err)
		return
	}

	message, err := s.Controllers.EmployeeController.UpdateEmployee(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, message)
}

func (s Server) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	message, err := s.Controllers.EmployeeController.DeleteEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, message)
}

func (s Server) NotFound(w http.ResponseWriter, _ *http.Request) {
	s.httpResponse(w, http.StatusNotFound, map[string]string{"message": "Page not found"})
}

func bindIDs(r *http.Request) ([]int64, error) {
	var ids *[]int64
	if err := runtime.BindQueryParameter("form", true, false, "id", r.URL.Query(), &ids); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid format for parameter id", err)
	}

	if ids == nil {
		return nil, nil
	}
	return *ids, nil
}

// decodeBody reads a JSON object into form. An empty body is an empty form.
func decodeBody(r *http.Request, form any) error {
	if err := json.NewDecoder(r.Body).Decode(form); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Wrap(apperrors.ErrBadRequest, "Invalid request body", err)
	}

	return nil
}

func (s Server) errorResponse(w http.ResponseWriter, err error) {
	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		s.deps.Logger.Error("Request failed", slog.String("error", err.Error()))
	}

	s.httpResponse(w, status, map[string]string{"message": apperrors.Message(err)})
}

func (s Server) httpResponse(w http.ResponseWriter, status int, data any) {
	respData, marshalErr := json.Marshal(data)
	if marshalErr != nil {
		s.deps.Logger.Error("Error marshaling response", slog.String("error", marshalErr.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(respData); err != nil {
		s.deps.Logger.Error("Error writing response", slog.String("error", err.Error()))
	}
}
