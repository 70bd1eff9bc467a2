package utils_test

import (
	"testing"

	"github.com/temirov/dirscan/internal/utils"
)

func TestFormatByteCount(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero", bytes: 0, expected: "0"},
		{name: "hundreds", bytes: 512, expected: "512"},
		{name: "thousands", bytes: 1234567, expected: "1,234,567"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatByteCount(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestFormatKilobytesAndMegabytes(t *testing.T) {
	testCases := []struct {
		name              string
		bytes             int64
		expectedKilobytes string
		expectedMegabytes string
	}{
		{name: "zero", bytes: 0, expectedKilobytes: "0.0", expectedMegabytes: "0.00"},
		{name: "fractional kilobyte", bytes: 1536, expectedKilobytes: "1.5", expectedMegabytes: "0.00"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expectedKilobytes: "10240.0", expectedMegabytes: "10.00"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if result := utils.FormatKilobytes(testCase.bytes); result != testCase.expectedKilobytes {
				t.Fatalf("expected %s KB, got %s", testCase.expectedKilobytes, result)
			}
			if result := utils.FormatMegabytes(testCase.bytes); result != testCase.expectedMegabytes {
				t.Fatalf("expected %s MB, got %s", testCase.expectedMegabytes, result)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0 B"},
		{name: "bytes", bytes: 512, expected: "512 B"},
		{name: "fractional kibibyte", bytes: 1536, expected: "1.5 KiB"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}
