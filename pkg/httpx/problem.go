package httpx

import (
	"net/http"
	"time"
)

// Problem is the JSON error body every failing endpoint returns. The shape
// follows problem-detail conventions with a stable type URI per error kind
// so clients can switch on Type without parsing Message.
type Problem struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
}

const problemTypeBase = "https://kroya.app/problems/"

// NewProblem builds a problem body for the given kind slug.
func NewProblem(status int, kind, title, message string) Problem {
	return Problem{
		Type:      problemTypeBase + kind,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Status:    status,
	}
}

// WriteProblem writes the problem as the JSON response body with its status.
func WriteProblem(w http.ResponseWriter, p Problem) {
	WriteJSON(w, p.Status, p)
}

// Common problem constructors used across handlers and middleware.

func ProblemBadRequest(message string) Problem {
	return NewProblem(http.StatusBadRequest, "invalid-input", "Invalid Input", message)
}

func ProblemUnauthorized(kind, message string) Problem {
	return NewProblem(http.StatusUnauthorized, kind, "Unauthorized", message)
}

func ProblemForbidden(message string) Problem {
	return NewProblem(http.StatusForbidden, "forbidden", "Forbidden", message)
}

func ProblemNotFound(kind, message string) Problem {
	return NewProblem(http.StatusNotFound, kind, "Not Found", message)
}

func ProblemConflict(kind, message string) Problem {
	return NewProblem(http.StatusConflict, kind, "Conflict", message)
}

func ProblemInternal(message string) Problem {
	return NewProblem(http.StatusInternalServerError, "internal", "Internal Server Error", message)
}
