package utils

// difficultyNames is the fixed display-name mapping for difficulty levels 1-5.
var difficultyNames = map[int]string{
	1: "基礎",
	2: "簡單",
	3: "中等",
	4: "困難",
	5: "專家",
}

// problemTypeNames is the fixed display-name mapping for problem types.
var problemTypeNames = map[string]string{
	"multiple_choice": "選擇題",
	"free_response":   "自由作答",
	"true_false":      "是非題",
	"fill_blank":      "填空題",
}

// FormatDifficulty returns the display name for a difficulty level
func FormatDifficulty(level int) string {
	if name, ok := difficultyNames[level]; ok {
		return name
	}
	return "未知"
}

// FormatProblemType returns the display name for a problem type
func FormatProblemType(problemType string) string {
	if name, ok := problemTypeNames[problemType]; ok {
		return name
	}
	return problemType
}
