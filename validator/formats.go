package validator

import (
	"encoding/base64"
	"net/netip"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/schemagraph/schema"
)

var (
	emailRegex = regexp.MustCompile("(?i)^[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
		"@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$")
	hostnameRegex = regexp.MustCompile(`^(([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9])\.)*` +
		`([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9\-]*[A-Za-z0-9])$`)
)

// dateTimeLayouts are the accepted date-time renderings, most specific first.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatCheck reports whether a string satisfies a format.
type formatCheck struct {
	valid func(string) bool
	kind  Kind
}

// formatChecks maps the checked formats to their rule. Other formats are
// annotations and always pass.
var formatChecks = map[string]formatCheck{
	schema.FormatDateTime: {isDateTime, KindDateTimeExpected},
	schema.FormatURI:      {isURI, KindURIExpected},
	schema.FormatEmail:    {emailRegex.MatchString, KindEmailExpected},
	schema.FormatIPv4:     {isIPv4, KindIPv4Expected},
	schema.FormatIPv6:     {isIPv6, KindIPv6Expected},
	schema.FormatGUID:     {isGUID, KindGUIDExpected},
	schema.FormatUUID:     {isGUID, KindGUIDExpected},
	schema.FormatHostname: {hostnameRegex.MatchString, KindHostnameExpected},
	schema.FormatByte:     {isBase64, KindBase64Expected},
	schema.FormatBase64:   {isBase64, KindBase64Expected},
}

func isDateTime(s string) bool {
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// isURI accepts absolute URIs only.
func isURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func isIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

func isIPv6(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is6()
}

func isGUID(s string) bool {
	return uuid.Validate(s) == nil
}

func isBase64(s string) bool {
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
