// Package course contains the HTTP handlers for courses and for the
// course ⇄ student association.
package course

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/school-api/internal/storage"
	"github.com/aanand-mishra/school-api/internal/types"
	"github.com/aanand-mishra/school-api/internal/utils/request"
	"github.com/aanand-mishra/school-api/internal/utils/response"
)

// New handles POST /api/courses
//
//	{ "name": "Algebra", "description": "Linear algebra basics" }
//
// name is limited to 200 characters.
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a course")

		var course types.Course
		if !response.DecodeAndValidate(w, r, &course) {
			return
		}

		lastID, err := storage.CreateCourse(r.Context(), course.Name, course.Description)
		if err != nil {
			slog.Error("error creating course", slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		slog.Info("course created", slog.Int64("id", lastID), slog.String("course", course.String()))
		response.WriteJSON(w, http.StatusCreated, map[string]int64{"id": lastID})
	}
}

func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r, "id")
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		course, err := storage.GetCourseByID(r.Context(), id)
		if err != nil {
			slog.Error("error getting course",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, course)
	}
}

func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses, err := storage.GetCourses(r.Context())
		if err != nil {
			slog.Error("error getting courses", slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, courses)
	}
}

// Students handles GET /api/courses/{id}/students
func Students(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r, "id")
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		students, err := storage.GetCourseStudents(r.Context(), id)
		if err != nil {
			slog.Error("error getting course students",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// Enroll handles PUT /api/courses/{id}/students/{studentID}
// Enrolling an already enrolled student succeeds without change.
func Enroll(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, studentID, ok := pairFromPath(w, r)
		if !ok {
			return
		}
		slog.Info("enrolling student",
			slog.Int64("course_id", courseID),
			slog.Int64("student_id", studentID))

		if err := storage.AddStudentToCourse(r.Context(), courseID, studentID); err != nil {
			slog.Error("error enrolling student",
				slog.Int64("course_id", courseID),
				slog.Int64("student_id", studentID),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	}
}

// Unenroll handles DELETE /api/courses/{id}/students/{studentID}
func Unenroll(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, studentID, ok := pairFromPath(w, r)
		if !ok {
			return
		}
		slog.Info("unenrolling student",
			slog.Int64("course_id", courseID),
			slog.Int64("student_id", studentID))

		if err := storage.RemoveStudentFromCourse(r.Context(), courseID, studentID); err != nil {
			slog.Error("error unenrolling student",
				slog.Int64("course_id", courseID),
				slog.Int64("student_id", studentID),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	}
}

func pairFromPath(w http.ResponseWriter, r *http.Request) (courseID, studentID int64, ok bool) {
	courseID, err := request.PathID(r, "id")
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return 0, 0, false
	}
	studentID, err = request.PathID(r, "studentID")
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return 0, 0, false
	}
	return courseID, studentID, true
}
