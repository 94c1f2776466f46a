package numbering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProjectNumber(t *testing.T) {
	april2024 := time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "001-2404", ProjectNumber(0, april2024))
	assert.Equal(t, "012-2404", ProjectNumber(11, april2024))
	assert.Equal(t, "100-2404", ProjectNumber(99, april2024))

	dec2025 := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "001-2512", ProjectNumber(0, dec2025))
}

func TestPONumber(t *testing.T) {
	assert.Equal(t, "001-2404-001", PONumber("001-2404", 0))
	assert.Equal(t, "001-2404-003", PONumber("001-2404", 2))
	assert.Equal(t, "042-2501-010", PONumber("042-2501", 9))
}
