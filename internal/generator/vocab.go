package generator

// Name pools shared by the participant and researcher generators.
var (
	firstNames = []string{
		"Avery", "Jordan", "Taylor", "Riley", "Quinn", "Hayden", "Peyton",
		"Logan", "Casey", "Kai", "Maya", "Aria", "Noah", "Liam", "Olivia",
		"Emma", "Sophia", "Isabella", "Ethan", "Aiden", "Amara", "Sofia",
		"Zoe", "Leo", "Mila", "Ishan", "Anika", "Diego", "Lucia",
	}

	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez",
		"Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore",
		"Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
		"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Walker",
	}
)
