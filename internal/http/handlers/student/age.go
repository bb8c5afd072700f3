package student

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/school-api/internal/storage"
	"github.com/aanand-mishra/school-api/internal/types"
	"github.com/aanand-mishra/school-api/internal/utils/request"
	"github.com/aanand-mishra/school-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// RawSQL handles GET /api/students/raw-sql?min_age=N
//
// Students strictly older than min_age as plain tuples:
//
//	{ "columns": ["id","name",...], "rows": [[2,"Ana","Ruiz",...]] }
//
// defaultMinAge is used when min_age is absent.
// ─────────────────────────────────────────────────────────────────────────────
func RawSQL(storage storage.Storage, defaultMinAge int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minAge, err := request.QueryInt(r, "min_age", defaultMinAge)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("filtering student rows by age", slog.Int("min_age", minAge))

		set, err := storage.StudentRowsOlderThan(r.Context(), minAge)
		if err != nil {
			slog.Error("error filtering student rows",
				slog.Int("min_age", minAge),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, set)
	}
}

// RawQuery handles GET /api/students/raw-query?min_age=N
//
// Same filter as RawSQL, answered with full student objects. The
// sequence is drained before anything is written so a mid-stream error
// still produces a clean 500.
func RawQuery(storage storage.Storage, defaultMinAge int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minAge, err := request.QueryInt(r, "min_age", defaultMinAge)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("filtering students by age", slog.Int("min_age", minAge))

		students := make([]types.Student, 0)
		for student, err := range storage.StudentsOlderThan(r.Context(), minAge) {
			if err != nil {
				slog.Error("error filtering students",
					slog.Int("min_age", minAge),
					slog.String("error", err.Error()))
				response.StorageError(w, err)
				return
			}
			students = append(students, student)
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}
