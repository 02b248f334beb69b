package planner

import "github.com/misterclayt0n/lazaro/internal/models"

// scheduleTemplates maps days-per-week to the fixed per-week type
// rotation sequence (spec.md §4.5 Step 3).
var scheduleTemplates = map[int][]models.SessionType{
	1: {models.SessionStrength},
	2: {models.SessionStrength, models.SessionHypertrophy},
	3: {models.SessionStrength, models.SessionHypertrophy, models.SessionEndurance},
	4: {models.SessionStrength, models.SessionHypertrophy, models.SessionTechnique, models.SessionEndurance},
	5: {models.SessionStrength, models.SessionHypertrophy, models.SessionTechnique, models.SessionEndurance, models.SessionStrength},
}

// dayOffsets maps days-per-week to the Monday-relative day offsets each
// slot of scheduleTemplates falls on (spec.md §4.5 Step 3).
var dayOffsets = map[int][]int{
	1: {0},
	2: {0, 3},
	3: {0, 2, 4},
	4: {0, 1, 3, 5},
	5: {0, 1, 2, 4, 5},
}
