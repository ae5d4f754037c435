// Package pages contains the HTTP handlers for the browser-facing
// surface: the student list page, the add-student form target, and the
// count endpoint its script polls once per page load.
//
// HANDLER PATTERN — THE CLOSURE / FACTORY PATTERN:
// Go's router expects handler functions with the signature
// func(http.ResponseWriter, *http.Request), which has no room for
// extra parameters like a database. Each exported function here accepts
// the dependencies and returns a handler that closes over them:
//
//	router.HandleFunc("GET /{$}", pages.Home(webSite, storage))
//
// Home(webSite, storage) is called ONCE at startup; the handler it
// returns is called on EVERY request.
package pages

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"impractical.co/temple"

	"github.com/aanand-mishra/students-web/internal/site"
	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/types"
	"github.com/aanand-mishra/students-web/internal/utils/response"
)

// FormField is the name of the form input carrying the candidate
// student name on POST /student.
const FormField = "student"

// Home handles GET /
// Fetches every student and renders the list page.
//
// Success response (200 OK): the HTML page — one list item per student,
// the add-student form, and the count placeholder.
//
// Error response:
//
//	500 Internal — database error (generic message, details go to the log)
func Home(webSite *site.Site, storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("rendering student list")

		students, err := storage.GetStudents()
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		// temple picks its logger up from the context; hand it ours so
		// render failures land in the same log stream as everything else.
		ctx := temple.LoggingContext(r.Context(), slog.Default())
		temple.Render(ctx, w, webSite, site.StudentsPage{Students: students})
	}
}

// AddStudent handles POST /student
// Creates a student from the form field "student" and redirects back to
// the list page.
//
// Success response: 303 See Other → /  (the re-rendered list includes
// the new student)
//
// Error responses:
//
//	400 Bad Request — missing or empty name; no row is created
//	500 Internal    — database error; no row is created
//
// A failed submission never redirects: the caller gets an explicit
// status instead of a page that silently looks successful.
func AddStudent(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("adding student from form")

		if err := r.ParseForm(); err != nil {
			slog.Error("error parsing form", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("malformed form body")))
			return
		}

		student := types.Student{Name: r.PostFormValue(FormField)}

		// An absent field and an empty one look the same here: both
		// fail the required rule on Name.
		if err := validator.New().Struct(student); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			slog.Error("invalid student submission",
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		lastID, err := storage.CreateStudent(student.Name)
		if err != nil {
			slog.Error("error adding student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.Int64("id", lastID))

		// 303 turns the browser's POST into a GET of the list page, so
		// a refresh re-renders rather than re-submitting the form.
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Count handles GET /data
// Returns the total number of students as a JSON object.
//
// Success response (200 OK):
//
//	{ "count": 2 }
//
// Error response:
//
//	500 Internal — database error
func Count(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("counting students")

		count, err := storage.CountStudents()
		if err != nil {
			slog.Error("error counting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
	}
}
