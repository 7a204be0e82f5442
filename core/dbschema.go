package core

import (
	"time"
)

// RouteEntry is the persisted form of a route descriptor. Permissions is
// the JSON encoding of the route's permissions value (a document or a
// source identifier string); override strategies are code and never persist.
type RouteEntry struct {
	Path        string    `json:"path" gorm:"primaryKey;type:text"`
	Permissions *string   `json:"permissions" gorm:"type:json;default:null"`
	DeniedRoute string    `json:"deniedRoute" gorm:"type:text"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;autoCreateTime"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}
