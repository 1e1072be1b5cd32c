package rules

import (
	"strings"
	"unicode/utf8"
)

// Email length bounds, inclusive.
const (
	EmailMinLength = 5
	EmailMaxLength = 50
)

// Email results.
const (
	ValidEmail   = "Valid Email"
	InvalidEmail = "Invalid Email"
)

// ValidateEmail applies a shape check only: length within bounds and both
// an "@" and a "." somewhere in the address.
func ValidateEmail(email string) string {
	n := utf8.RuneCountInString(email)
	if n >= EmailMinLength && n <= EmailMaxLength &&
		strings.Contains(email, "@") && strings.Contains(email, ".") {
		return ValidEmail
	}
	return InvalidEmail
}

// URLMaxLength is the longest URL ValidateURL accepts.
const URLMaxLength = 255

// URL results.
const (
	ValidURL   = "Valid URL"
	InvalidURL = "Invalid URL"
)

// ValidateURL accepts http:// and https:// URLs up to URLMaxLength characters.
func ValidateURL(url string) string {
	if (strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")) &&
		utf8.RuneCountInString(url) <= URLMaxLength {
		return ValidURL
	}
	return InvalidURL
}

// Card number length bounds, inclusive.
const (
	CardMinDigits = 13
	CardMaxDigits = 16
)

// Card results.
const (
	ValidCard   = "Valid Card"
	InvalidCard = "Invalid Card"
)

// ValidateCreditCard accepts strings of CardMinDigits to CardMaxDigits ASCII
// digits. No checksum is applied.
func ValidateCreditCard(number string) string {
	if len(number) < CardMinDigits || len(number) > CardMaxDigits {
		return InvalidCard
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return InvalidCard
		}
	}
	return ValidCard
}

// Date component bounds, inclusive.
const (
	MinYear  = 1900
	MaxYear  = 2100
	MinMonth = 1
	MaxMonth = 12
	MinDay   = 1
	MaxDay   = 31
)

// Date results.
const (
	ValidDate   = "Valid Date"
	InvalidDate = "Invalid Date"
)

// ValidateDate range-checks each component independently. Days per month
// and leap years are not considered, so 2023-02-31 is a Valid Date.
func ValidateDate(year, month, day int) string {
	if year >= MinYear && year <= MaxYear &&
		month >= MinMonth && month <= MaxMonth &&
		day >= MinDay && day <= MaxDay {
		return ValidDate
	}
	return InvalidDate
}

// MaxFileSize is the largest accepted file size in bytes (1 MiB).
const MaxFileSize = 1 << 20

// File size results.
const (
	ValidFileSize   = "Valid File Size"
	InvalidFileSize = "Invalid File Size"
)

// CheckFileSize accepts sizes from 0 to MaxFileSize bytes.
func CheckFileSize(size int64) string {
	if size >= 0 && size <= MaxFileSize {
		return ValidFileSize
	}
	return InvalidFileSize
}
