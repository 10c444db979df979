package model

import (
	"time"
)

// Reservation is one booked time slot for a single service on a single date.
// Wire and storage field names follow the reserves table layout: dates are
// "2006-01-02" strings and times are zero-padded "15:04" strings, so interval
// comparisons reduce to lexicographic order.
type Reservation struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	UserID    string    `json:"usuari_id" bson:"usuari_id" validate:"required,min=1,max=120"`
	Service   string    `json:"servei" bson:"servei" validate:"required,min=1,max=100"`
	Date      string    `json:"data" bson:"data" validate:"required,caldate"`
	StartTime string    `json:"hora_inici" bson:"hora_inici" validate:"required,clocktime"`
	EndTime   string    `json:"hora_fi" bson:"hora_fi" validate:"required,clocktime"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// ReservationFilter narrows a listing. Zero values mean "no filter";
// when both are set they are AND-combined.
type ReservationFilter struct {
	Service string
	Date    string
}
