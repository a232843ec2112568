package domain

type VisitCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
