package types

// BookingPayload is the body of a booking create or update call.
// It is either a well-formed Booking or a RawPayload.
type BookingPayload interface {
	bookingPayload()
}

// TokenPayload is the body of a login call.
// It is either a well-formed TokenRequest or a RawPayload.
type TokenPayload interface {
	tokenPayload()
}

// RawPayload is a semi-structured body used to send wrong-typed values or to
// leave keys out entirely. A missing key is absent from the JSON document,
// while a key mapped to nil is serialized as null.
type RawPayload map[string]any

func (RawPayload) bookingPayload() {}
func (RawPayload) tokenPayload()   {}

// Clone returns a deep copy of nested RawPayload and map values
func (p RawPayload) Clone() RawPayload {
	out := make(RawPayload, len(p))
	for k, v := range p {
		switch nested := v.(type) {
		case RawPayload:
			out[k] = nested.Clone()
		case map[string]any:
			out[k] = map[string]any(RawPayload(nested).Clone())
		default:
			out[k] = v
		}
	}
	return out
}
