package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const bytesPerKilobyte = 1024

// FormatByteCount renders a byte count with thousands separators, e.g. "1,234,567".
func FormatByteCount(bytes int64) string {
	return humanize.Comma(bytes)
}

// FormatKilobytes renders bytes as kilobytes with one decimal, e.g. "1.5".
func FormatKilobytes(bytes int64) string {
	return fmt.Sprintf("%.1f", float64(bytes)/bytesPerKilobyte)
}

// FormatMegabytes renders bytes as megabytes with two decimals, e.g. "0.01".
func FormatMegabytes(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/bytesPerKilobyte/bytesPerKilobyte)
}

// FormatFileSize converts a byte length into a human-readable IEC string such as "1.5 KiB".
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return humanize.IBytes(0)
	}
	return humanize.IBytes(uint64(bytes))
}
