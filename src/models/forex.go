package models

// ForexResponse is the body returned by a Frankfurter-style rates API, e.g.
// {"amount":1.0,"base":"USD","date":"2024-01-02","rates":{"EUR":0.91}}.
type ForexResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}
