package schema

// Format values understood by the validator and the code generators.
const (
	FormatDateTime = "date-time"
	FormatDate     = "date"
	FormatTime     = "time"
	FormatTimeSpan = "time-span"
	FormatDuration = "duration"
	FormatURI      = "uri"
	FormatEmail    = "email"
	FormatIPv4     = "ipv4"
	FormatIPv6     = "ipv6"
	FormatGUID     = "guid"
	FormatUUID     = "uuid"
	FormatHostname = "hostname"
	FormatByte     = "byte"
	FormatBase64   = "base64"
	FormatBinary   = "binary"
	FormatInteger  = "int32"
	FormatLong     = "int64"
	FormatFloat    = "float"
	FormatDouble   = "double"
	FormatDecimal  = "decimal"
	FormatPhone    = "phone"
)
