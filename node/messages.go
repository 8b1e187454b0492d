package node

import (
	n2k "github.com/openmarine/go-n2k"
)

// Typed views over commonly used PGNs. These are conveniences for applications that do not want
// to pick values out of FieldValues by hand. Zero pointer fields mean the value was not present
// in the message ("no data" on the wire).

const (
	PGNPositionRapid = uint32(129025)
	PGNWindData      = uint32(130306)
)

// WindData is typed view of PGN 130306 (Wind Data).
type WindData struct {
	SID       *uint64
	Speed     *float64 // m/s
	Angle     *float64 // rad
	Reference *uint64
}

// WindDataFromMessage converts decoded PGN 130306 message into typed form.
func WindDataFromMessage(msg n2k.Message) WindData {
	result := WindData{}
	if fv, ok := msg.Fields.FindByID("sid"); ok {
		if v, ok := fv.Value.(uint64); ok {
			result.SID = &v
		}
	}
	if fv, ok := msg.Fields.FindByID("windSpeed"); ok {
		if v, ok := fv.Value.(float64); ok {
			result.Speed = &v
		}
	}
	if fv, ok := msg.Fields.FindByID("windAngle"); ok {
		if v, ok := fv.Value.(float64); ok {
			result.Angle = &v
		}
	}
	if fv, ok := msg.Fields.FindByID("reference"); ok {
		switch v := fv.Value.(type) {
		case uint64:
			result.Reference = &v
		case n2k.EnumValue:
			value := uint64(v.Value)
			result.Reference = &value
		}
	}
	return result
}

// Fields converts typed wind data back to field values ready for encoding.
func (w WindData) Fields() n2k.FieldValues {
	result := make(n2k.FieldValues, 0, 4)
	if w.SID != nil {
		result = append(result, n2k.FieldValue{ID: "sid", Value: *w.SID})
	}
	if w.Speed != nil {
		result = append(result, n2k.FieldValue{ID: "windSpeed", Value: *w.Speed})
	}
	if w.Angle != nil {
		result = append(result, n2k.FieldValue{ID: "windAngle", Value: *w.Angle})
	}
	if w.Reference != nil {
		result = append(result, n2k.FieldValue{ID: "reference", Value: *w.Reference})
	}
	return result
}

// PositionRapid is typed view of PGN 129025 (Position, Rapid Update).
type PositionRapid struct {
	Latitude  *float64 // deg
	Longitude *float64 // deg
}

// PositionRapidFromMessage converts decoded PGN 129025 message into typed form.
func PositionRapidFromMessage(msg n2k.Message) PositionRapid {
	result := PositionRapid{}
	if fv, ok := msg.Fields.FindByID("latitude"); ok {
		if v, ok := fv.Value.(float64); ok {
			result.Latitude = &v
		}
	}
	if fv, ok := msg.Fields.FindByID("longitude"); ok {
		if v, ok := fv.Value.(float64); ok {
			result.Longitude = &v
		}
	}
	return result
}

// Fields converts typed position back to field values ready for encoding.
func (p PositionRapid) Fields() n2k.FieldValues {
	result := make(n2k.FieldValues, 0, 2)
	if p.Latitude != nil {
		result = append(result, n2k.FieldValue{ID: "latitude", Value: *p.Latitude})
	}
	if p.Longitude != nil {
		result = append(result, n2k.FieldValue{ID: "longitude", Value: *p.Longitude})
	}
	return result
}
