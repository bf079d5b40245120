package jsonnav

// systemStrings is the built-in dictionary of the binary encoding.
// The order is part of the wire format, append only.
var systemStrings = [...]string{
	"$s",
	"$t",
	"$v",
	"_attachments",
	"_etag",
	"_rid",
	"_self",
	"_ts",
	"attachments/",
	"coordinates",
	"geometry",
	"GeometryCollection",
	"id",
	"inE",
	"inV",
	"label",
	"LineString",
	"link",
	"MultiLineString",
	"MultiPoint",
	"MultiPolygon",
	"name",
	"outE",
	"outV",
	"Point",
	"Polygon",
	"properties",
	"type",
	"value",
	"Feature",
	"FeatureCollection",
	"_id",

	// Two-byte references.
	"$type",
	"$value",
	"ttl",
	"partitionKey",
	"_lsn",
	"_metadata",
	"timestamp",
	"items",
	"data",
	"count",
}

const maxSystemStringLength = 18

// systemStringsByLength buckets system string indexes by length.
var systemStringsByLength [maxSystemStringLength + 1][]uint16

func init() {
	for i, s := range systemStrings {
		if len(s) > maxSystemStringLength {
			panic("system string too long: " + s)
		}
		systemStringsByLength[len(s)] = append(systemStringsByLength[len(s)], uint16(i))
	}
}

// systemStringIndex returns the index of s in the system dictionary.
func systemStringIndex[S ~[]byte | ~string](s S) (int, bool) {
	if len(s) >= len(systemStringsByLength) {
		return 0, false
	}
	for _, i := range systemStringsByLength[len(s)] {
		if systemStrings[i] == string(s) {
			return int(i), true
		}
	}
	return 0, false
}

// systemStringAt returns the system string at index i.
func systemStringAt(i int) (string, bool) {
	if i < 0 || i >= len(systemStrings) {
		return "", false
	}
	return systemStrings[i], true
}
