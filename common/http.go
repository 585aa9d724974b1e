package common

import "mime"

// Attachment builds a Content-Disposition value for a download named
// filename, quoting or encoding the name as needed.
func Attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
