package utils

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
)

// SendJSON writes v as a JSON body with the given status code. The body is
// encoded before anything is written, so a value that cannot be encoded
// produces a 500 instead of a truncated response.
func SendJSON(w http.ResponseWriter, r *http.Request, statusCode int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("Error encoding JSON response", "statusCode", statusCode, "error", err)
		statusCode = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"message":"Internal server error"}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.FromContext(r.Context()).Warn("Error writing JSON response", "statusCode", statusCode, "error", err)
	}
}

// SendJSONError writes {"message": ...} with the given status code.
func SendJSONError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	logger.FromContext(r.Context()).Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	SendJSON(w, r, statusCode, map[string]string{"message": message})
}

// RoundFloat rounds val to the given number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
