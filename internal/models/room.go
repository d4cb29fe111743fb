package models

import "strconv"

// Room is a bookable campus room. Identity is the (building, name) pair;
// downstream loaders derive a stable id from it when they need one.
type Room struct {
	Name     string `json:"name" gorm:"size:100;primaryKey"`
	Building string `json:"building" gorm:"size:100;primaryKey"`
	Capacity int    `json:"capacity" gorm:"not null"`
}

// CSVHeader returns the room column order.
func (Room) CSVHeader() []string {
	return []string{"name", "building", "capacity"}
}

// CSVRecord returns the room as one CSV row.
func (r Room) CSVRecord() []string {
	return []string{r.Name, r.Building, strconv.Itoa(r.Capacity)}
}
