// Package router wires every handler factory to its method + path
// pattern and wraps the result in the CORS middleware.
package router

import (
	"net/http"

	"github.com/aanand-mishra/school-api/internal/config"
	"github.com/aanand-mishra/school-api/internal/http/handlers/course"
	"github.com/aanand-mishra/school-api/internal/http/handlers/student"
	"github.com/aanand-mishra/school-api/internal/storage"
	"github.com/gorilla/handlers"
)

// New returns the application handler.
//
// Route table:
//
//	POST   /api/students                          → create a student
//	GET    /api/students                          → list students
//	GET    /api/students/raw-sql?min_age=N        → age filter, raw tuples
//	GET    /api/students/raw-query?min_age=N      → age filter, student objects
//	GET    /api/students/{id}                     → get one student
//	PUT    /api/students/{id}                     → update a student
//	DELETE /api/students/{id}                     → delete a student
//	GET    /api/students/{id}/courses             → courses of a student
//	POST   /api/courses                           → create a course
//	GET    /api/courses                           → list courses
//	GET    /api/courses/{id}                      → get one course
//	GET    /api/courses/{id}/students             → students of a course
//	PUT    /api/courses/{id}/students/{studentID} → enroll
//	DELETE /api/courses/{id}/students/{studentID} → unenroll
//
// The literal raw-sql and raw-query segments win over {id} because
// ServeMux prefers the more specific pattern.
func New(cfg *config.Config, storage storage.Storage) http.Handler {
	mux := http.NewServeMux()

	minAge := cfg.Queries.AgeThreshold

	mux.HandleFunc("POST /api/students", student.New(storage))
	mux.HandleFunc("GET /api/students", student.GetList(storage))
	mux.HandleFunc("GET /api/students/raw-sql", student.RawSQL(storage, minAge))
	mux.HandleFunc("GET /api/students/raw-query", student.RawQuery(storage, minAge))
	mux.HandleFunc("GET /api/students/{id}", student.GetByID(storage))
	mux.HandleFunc("PUT /api/students/{id}", student.Update(storage))
	mux.HandleFunc("DELETE /api/students/{id}", student.Delete(storage))
	mux.HandleFunc("GET /api/students/{id}/courses", student.Courses(storage))

	mux.HandleFunc("POST /api/courses", course.New(storage))
	mux.HandleFunc("GET /api/courses", course.GetList(storage))
	mux.HandleFunc("GET /api/courses/{id}", course.GetByID(storage))
	mux.HandleFunc("GET /api/courses/{id}/students", course.Students(storage))
	mux.HandleFunc("PUT /api/courses/{id}/students/{studentID}", course.Enroll(storage))
	mux.HandleFunc("DELETE /api/courses/{id}/students/{studentID}", course.Unenroll(storage))

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	return cors(mux)
}
