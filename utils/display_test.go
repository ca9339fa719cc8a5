package utils_test

import (
	"testing"

	"mathcms/utils"

	"github.com/stretchr/testify/assert"
)

func TestFormatDifficulty(t *testing.T) {
	assert.Equal(t, "基礎", utils.FormatDifficulty(1))
	assert.Equal(t, "簡單", utils.FormatDifficulty(2))
	assert.Equal(t, "中等", utils.FormatDifficulty(3))
	assert.Equal(t, "困難", utils.FormatDifficulty(4))
	assert.Equal(t, "專家", utils.FormatDifficulty(5))
	assert.Equal(t, "未知", utils.FormatDifficulty(0))
	assert.Equal(t, "未知", utils.FormatDifficulty(6))
}

func TestFormatProblemType(t *testing.T) {
	assert.Equal(t, "選擇題", utils.FormatProblemType("multiple_choice"))
	assert.Equal(t, "自由作答", utils.FormatProblemType("free_response"))
	assert.Equal(t, "是非題", utils.FormatProblemType("true_false"))
	assert.Equal(t, "填空題", utils.FormatProblemType("fill_blank"))
	assert.Equal(t, "essay", utils.FormatProblemType("essay"), "unknown types pass through unchanged")
}
