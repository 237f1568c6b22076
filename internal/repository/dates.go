package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Toda fecha que entra o sale de Mongo pasa por estas funciones.
// Se guarda en UTC con precisión de milisegundos; ida y vuelta dan el mismo instante.

func toDateTime(t time.Time) primitive.DateTime {
	return primitive.NewDateTimeFromTime(t.UTC())
}

func fromDateTime(d primitive.DateTime) time.Time {
	return d.Time().UTC()
}

func toDateTimePtr(t *time.Time) *primitive.DateTime {
	if t == nil {
		return nil
	}
	d := toDateTime(*t)
	return &d
}

func fromDateTimePtr(d *primitive.DateTime) *time.Time {
	if d == nil {
		return nil
	}
	t := fromDateTime(*d)
	return &t
}

// now truncado a milisegundos, así lo que retorna Create coincide con lo que se lee después
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
